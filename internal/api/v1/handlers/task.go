package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"task-management/internal/apperrors"
	"task-management/internal/middleware"
	"task-management/internal/models"
	"task-management/internal/service"
	"task-management/internal/websocket"
	"task-management/pkg/logger"
)

type TaskHandler struct {
	tasks *service.TaskService
	hub   *websocket.Hub
}

func NewTaskHandler(tasks *service.TaskService, hub *websocket.Hub) *TaskHandler {
	return &TaskHandler{tasks: tasks, hub: hub}
}

// CreateTask menangani POST /api/tasks.
// Owner task selalu identity pemanggil; field owner apa pun di body
// tidak pernah dibaca karena tidak ada di CreateTaskRequest.
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return respondBadRequest(c, "Bad request")
	}

	if violations := req.Validate(); violations != nil {
		return respondError(c, apperrors.NewValidationError(violations))
	}

	task, err := h.tasks.Create(c.Context(), identity, req.Title, req.Description, req.Status, req.Priority)
	if err != nil {
		return respondError(c, err)
	}

	h.hub.BroadcastTaskEvent("created", task)
	return c.JSON(task)
}

// ListTasks menangani GET /api/tasks: hanya task milik pemanggil.
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	tasks, err := h.tasks.List(c.Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

// GetTask menangani GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return respondBadRequest(c, "Invalid task ID")
	}

	task, err := h.tasks.Get(c.Context(), identity, taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

// UpdateTask menangani PUT /api/tasks/:id, update parsial field mutable.
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return respondBadRequest(c, "Invalid task ID")
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return respondBadRequest(c, "Bad request")
	}

	if violations := req.Validate(); violations != nil {
		return respondError(c, apperrors.NewValidationError(violations))
	}

	task, err := h.tasks.Update(c.Context(), identity, taskID, service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		return respondError(c, err)
	}

	h.hub.BroadcastTaskEvent("updated", task)
	return c.JSON(task)
}

// DeleteTask menangani DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return respondBadRequest(c, "Invalid task ID")
	}

	if err := h.tasks.Delete(c.Context(), identity, taskID); err != nil {
		return respondError(c, err)
	}

	h.hub.BroadcastTaskEvent("deleted", &models.Task{ID: taskID, UserID: identity.ID})
	return c.SendString("Task deleted successfully")
}

// TasksByStatus menangani GET /api/tasks/status/:status.
// Status yang tidak dikenal menghasilkan array kosong, bukan error.
func (h *TaskHandler) TasksByStatus(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	tasks, err := h.tasks.ListByStatus(c.Context(), identity, c.Params("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

// TasksByPriority menangani GET /api/tasks/priority/:priority
func (h *TaskHandler) TasksByPriority(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	tasks, err := h.tasks.ListByPriority(c.Context(), identity, c.Params("priority"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}
