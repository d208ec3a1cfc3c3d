package service

import (
	"context"

	"go.uber.org/zap"

	"task-management/internal/apperrors"
	"task-management/internal/models"
	"task-management/internal/repository"
	"task-management/pkg/logger"
)

// TaskService menegakkan invariant kepemilikan: setiap operasi task
// hanya melihat dan mengubah task milik identity pemanggil. Identity
// selalu diterima sebagai parameter eksplisit, bukan state ambient.
type TaskService struct {
	tasks *repository.TaskRepository
	cache *repository.TaskCache
}

func NewTaskService(tasks *repository.TaskRepository, cache *repository.TaskCache) *TaskService {
	return &TaskService{tasks: tasks, cache: cache}
}

// TaskUpdate berisi field yang boleh diubah lewat update.
// Pointer (*) untuk menandakan bahwa field bisa kosong.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
}

// Create membuat task baru. Owner selalu diambil dari identity,
// body request tidak pernah bisa menentukan owner.
func (s *TaskService) Create(ctx context.Context, identity models.Identity, title, description, status, priority string) (*models.Task, error) {
	if status == "" {
		status = models.StatusTodo
	}
	if priority == "" {
		priority = models.PriorityMedium
	}

	task, err := s.tasks.Create(identity.ID, title, description, status, priority)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, task)
	logger.AuditLogger.Info("Task created successfully",
		zap.Int("task_id", task.ID), zap.Int("user_id", identity.ID))
	return task, nil
}

// List mengembalikan semua task milik identity.
func (s *TaskService) List(ctx context.Context, identity models.Identity) ([]models.Task, error) {
	tasks, err := s.tasks.ListByOwner(identity.ID)
	if err != nil {
		return nil, err
	}
	// Simpan tiap task ke cache Redis
	for i := range tasks {
		s.cache.Set(ctx, &tasks[i])
	}
	return tasks, nil
}

// ListByStatus memfilter task milik identity dengan status persis.
// Nilai status yang tidak dikenal menghasilkan slice kosong, bukan error.
func (s *TaskService) ListByStatus(ctx context.Context, identity models.Identity, status string) ([]models.Task, error) {
	if !models.ValidStatus(status) {
		return []models.Task{}, nil
	}
	return s.tasks.ListByOwnerAndStatus(identity.ID, status)
}

// ListByPriority memfilter task milik identity dengan priority persis.
func (s *TaskService) ListByPriority(ctx context.Context, identity models.Identity, priority string) ([]models.Task, error) {
	if !models.ValidPriority(priority) {
		return []models.Task{}, nil
	}
	return s.tasks.ListByOwnerAndPriority(identity.ID, priority)
}

// Get mengambil satu task milik identity. Task yang tidak ada dan task
// milik user lain sama-sama menghasilkan ErrTaskNotFound sehingga
// keberadaan task user lain tidak pernah bocor.
func (s *TaskService) Get(ctx context.Context, identity models.Identity, taskID int) (*models.Task, error) {
	// Coba ambil dari cache Redis dulu
	if cached, ok := s.cache.Get(ctx, taskID); ok {
		if cached.UserID != identity.ID {
			return nil, apperrors.ErrTaskNotFound
		}
		return cached, nil
	}

	task, err := s.tasks.FindByIDAndOwner(taskID, identity.ID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.ErrTaskNotFound
	}

	s.cache.Set(ctx, task)
	return task, nil
}

// Update mengubah field mutable dari task milik identity.
// Owner tidak pernah bisa dipindah ke user lain.
func (s *TaskService) Update(ctx context.Context, identity models.Identity, taskID int, update TaskUpdate) (*models.Task, error) {
	task, err := s.tasks.FindByIDAndOwner(taskID, identity.ID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.ErrTaskNotFound
	}

	// Terapkan hanya field yang dikirim
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}

	updated, err := s.tasks.Update(taskID, identity.ID, task.Title, task.Description, task.Status, task.Priority)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Task hilang di antara resolve dan update
		s.cache.Del(ctx, taskID)
		return nil, apperrors.ErrTaskNotFound
	}

	s.cache.Del(ctx, taskID)
	s.cache.Set(ctx, updated)
	logger.AuditLogger.Info("Task updated", zap.Int("task_id", taskID), zap.Int("user_id", identity.ID))
	return updated, nil
}

// Delete menghapus task milik identity.
func (s *TaskService) Delete(ctx context.Context, identity models.Identity, taskID int) error {
	deleted, err := s.tasks.Delete(taskID, identity.ID)
	if err != nil {
		return err
	}
	if !deleted {
		logger.SecurityLogger.Warn("Delete attempt on missing or foreign task",
			zap.Int("task_id", taskID), zap.Int("user_id", identity.ID))
		return apperrors.ErrTaskNotFound
	}

	s.cache.Del(ctx, taskID)
	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID), zap.Int("user_id", identity.ID))
	return nil
}
