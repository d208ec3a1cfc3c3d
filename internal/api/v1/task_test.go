package v1

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-management/internal/models"
)

func createTask(t *testing.T, app *fiber.App, token string, body map[string]interface{}) models.Task {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/tasks", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var task models.Task
	decodeBody(t, resp, &task)
	require.NotZero(t, task.ID)
	return task
}

func TestCreateTaskDefaults(t *testing.T) {
	app := createTestApp()
	_, token := registerAndLogin(t, app, "taskuser")

	task := createTask(t, app, token, map[string]interface{}{
		"title": "Buy milk",
	})

	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.NotZero(t, task.UserID)
}

func TestCreateTaskIgnoresOwnerField(t *testing.T) {
	app := createTestApp()
	_, token := registerAndLogin(t, app, "ownerfield")

	// Body mencoba memaksa user_id lain, harus diabaikan
	task := createTask(t, app, token, map[string]interface{}{
		"title":   "Sneaky task",
		"user_id": 999999,
	})
	assert.NotEqual(t, 999999, task.UserID)

	// Task tetap muncul di list milik pembuatnya
	resp := doJSON(t, app, "GET", "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tasks []models.Task
	decodeBody(t, resp, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.UserID, tasks[0].UserID)
}

func TestCreateTaskValidation(t *testing.T) {
	app := createTestApp()
	_, token := registerAndLogin(t, app, "taskval")

	// Title terlalu pendek
	resp := doJSON(t, app, "POST", "/api/tasks", token, map[string]interface{}{
		"title": "ab",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Status di luar enum
	resp = doJSON(t, app, "POST", "/api/tasks", token, map[string]interface{}{
		"title":  "Valid title",
		"status": "URGENT",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTaskOwnership(t *testing.T) {
	app := createTestApp()
	_, aliceToken := registerAndLogin(t, app, "alice")
	_, bobToken := registerAndLogin(t, app, "bob")

	task := createTask(t, app, aliceToken, map[string]interface{}{
		"title": "Alice's task",
	})

	// Bob mengakses task milik alice: 404, bukan 403
	resp := doJSON(t, app, "GET", fmt.Sprintf("/api/tasks/%d", task.ID), bobToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var foreignBody map[string]interface{}
	decodeBody(t, resp, &foreignBody)

	// Respons untuk task yang memang tidak ada harus identik bentuknya
	resp = doJSON(t, app, "GET", "/api/tasks/999999", aliceToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var missingBody map[string]interface{}
	decodeBody(t, resp, &missingBody)
	assert.Equal(t, missingBody, foreignBody)

	// Bob juga tidak bisa menghapus
	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/tasks/%d", task.ID), bobToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Task alice masih utuh
	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/tasks/%d", task.ID), aliceToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListTasksScopedToOwner(t *testing.T) {
	app := createTestApp()
	_, aliceToken := registerAndLogin(t, app, "listalice")
	_, bobToken := registerAndLogin(t, app, "listbob")

	// Task kedua user dibuat berselang-seling
	aliceTask1 := createTask(t, app, aliceToken, map[string]interface{}{"title": "Alice one"})
	bobTask := createTask(t, app, bobToken, map[string]interface{}{"title": "Bob one"})
	aliceTask2 := createTask(t, app, aliceToken, map[string]interface{}{"title": "Alice two"})

	resp := doJSON(t, app, "GET", "/api/tasks", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var aliceTasks []models.Task
	decodeBody(t, resp, &aliceTasks)

	require.Len(t, aliceTasks, 2)
	ids := []int{aliceTasks[0].ID, aliceTasks[1].ID}
	assert.Contains(t, ids, aliceTask1.ID)
	assert.Contains(t, ids, aliceTask2.ID)
	for _, task := range aliceTasks {
		assert.Equal(t, aliceTask1.UserID, task.UserID)
		assert.NotEqual(t, bobTask.ID, task.ID)
	}
}

func TestFilterByStatusAndPriority(t *testing.T) {
	app := createTestApp()
	_, token := registerAndLogin(t, app, "filteruser")

	createTask(t, app, token, map[string]interface{}{"title": "Todo task"})
	createTask(t, app, token, map[string]interface{}{"title": "Done task", "status": "DONE"})
	createTask(t, app, token, map[string]interface{}{"title": "High prio", "priority": "HIGH"})

	resp := doJSON(t, app, "GET", "/api/tasks/status/DONE", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tasks []models.Task
	decodeBody(t, resp, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Done task", tasks[0].Title)

	resp = doJSON(t, app, "GET", "/api/tasks/priority/HIGH", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, "High prio", tasks[0].Title)
}

func TestFilterUnknownValueReturnsEmpty(t *testing.T) {
	app := createTestApp()
	_, token := registerAndLogin(t, app, "unknownfilter")

	createTask(t, app, token, map[string]interface{}{"title": "Some task"})

	// Nilai filter yang tidak dikenal: array kosong, bukan error
	resp := doJSON(t, app, "GET", "/api/tasks/status/URGENT", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tasks []models.Task
	decodeBody(t, resp, &tasks)
	assert.Empty(t, tasks)

	resp = doJSON(t, app, "GET", "/api/tasks/priority/CRITICAL", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &tasks)
	assert.Empty(t, tasks)
}

func TestUpdateTask(t *testing.T) {
	app := createTestApp()
	_, aliceToken := registerAndLogin(t, app, "updalice")
	_, bobToken := registerAndLogin(t, app, "updbob")

	task := createTask(t, app, aliceToken, map[string]interface{}{"title": "Original title"})

	// Update parsial: hanya status, field lain tidak berubah
	resp := doJSON(t, app, "PUT", fmt.Sprintf("/api/tasks/%d", task.ID), aliceToken, map[string]interface{}{
		"status": "IN_PROGRESS",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Task
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Original title", updated.Title)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, task.UserID, updated.UserID)

	// Status di luar enum ditolak
	resp = doJSON(t, app, "PUT", fmt.Sprintf("/api/tasks/%d", task.ID), aliceToken, map[string]interface{}{
		"status": "SHIPPED",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Bob tidak bisa mengubah task alice
	resp = doJSON(t, app, "PUT", fmt.Sprintf("/api/tasks/%d", task.ID), bobToken, map[string]interface{}{
		"title": "Hijacked",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Judul asli masih ada
	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/tasks/%d", task.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Original title", updated.Title)
}

func TestDeleteTask(t *testing.T) {
	app := createTestApp()
	_, token := registerAndLogin(t, app, "deluser")

	task := createTask(t, app, token, map[string]interface{}{"title": "To be deleted"})

	resp := doJSON(t, app, "DELETE", fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "Task deleted successfully", string(body))

	// Setelah dihapus, GET menghasilkan 404 yang sama
	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
