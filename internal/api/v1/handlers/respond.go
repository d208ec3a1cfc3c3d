package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"task-management/internal/apperrors"
	"task-management/pkg/logger"
)

// respondError menulis error sebagai respons JSON. Error yang bukan
// *AppError tidak pernah bocor ke klien: detailnya masuk log server,
// klien hanya menerima 500 generik.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body := fiber.Map{
			"message": appErr.Message,
			"success": false,
			"status":  appErr.StatusCode,
		}
		if len(appErr.Violations) > 0 {
			body["errors"] = appErr.Violations
		}
		return c.Status(appErr.StatusCode).JSON(body)
	}

	logger.ErrorLogger.Error("Unexpected error", zap.Error(err))
	return c.Status(apperrors.ErrInternal.StatusCode).JSON(fiber.Map{
		"message": apperrors.ErrInternal.Message,
		"success": false,
		"status":  apperrors.ErrInternal.StatusCode,
	})
}

func respondBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  fiber.StatusBadRequest,
	})
}
