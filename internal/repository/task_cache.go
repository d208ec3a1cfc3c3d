package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"task-management/internal/models"
)

// TaskCache menyimpan task per row di Redis dengan key task:<id>.
// Cache ini hanya optimasi baca: kegagalan Redis tidak boleh
// menggagalkan request, cukup jatuh ke database.
type TaskCache struct {
	rdb *redis.Client
}

func NewTaskCache(rdb *redis.Client) *TaskCache {
	return &TaskCache{rdb: rdb}
}

func cacheKey(taskID int) string {
	return fmt.Sprintf("task:%d", taskID)
}

// Get mengembalikan (nil, false) jika key tidak ada atau isinya rusak.
func (c *TaskCache) Get(ctx context.Context, taskID int) (*models.Task, bool) {
	cached, err := c.rdb.Get(ctx, cacheKey(taskID)).Result()
	if err != nil {
		return nil, false
	}
	var task models.Task
	if err := json.Unmarshal([]byte(cached), &task); err != nil {
		return nil, false
	}
	return &task, true
}

// Set menyimpan task ke cache selama 1 jam. Error diabaikan.
func (c *TaskCache) Set(ctx context.Context, task *models.Task) {
	taskJSON, err := json.Marshal(task)
	if err != nil {
		return
	}
	c.rdb.SetEX(ctx, cacheKey(task.ID), taskJSON, time.Hour)
}

func (c *TaskCache) Del(ctx context.Context, taskID int) {
	c.rdb.Del(ctx, cacheKey(taskID))
}
