package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"task-management/internal/apperrors"
	"task-management/internal/models"
	"task-management/internal/service"
	"task-management/internal/token"
)

// RequireAuth memverifikasi bearer token lalu me-resolve username di
// dalamnya menjadi Identity. Identity disimpan di locals dan oleh
// handler diteruskan secara eksplisit ke service layer.
func RequireAuth(issuer *token.Issuer, users *service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tokenString string
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Fallback ke query param untuk koneksi websocket
			tokenString = c.Query("token")
			if tokenString == "" {
				return writeAuthError(c, apperrors.ErrNoToken)
			}
		} else {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return writeAuthError(c, apperrors.ErrInvalidTokenFormat)
			}
			tokenString = parts[1]
		}

		username, err := issuer.Verify(tokenString)
		if err != nil {
			return writeAuthError(c, err)
		}

		// Username dari token harus masih menunjuk ke user yang ada
		identity, err := users.ResolvePrincipal(username)
		if err != nil {
			return writeAuthError(c, err)
		}

		c.Locals("identity", identity)
		return c.Next()
	}
}

// IdentityFromCtx mengambil Identity yang disimpan RequireAuth.
func IdentityFromCtx(c *fiber.Ctx) models.Identity {
	identity, _ := c.Locals("identity").(models.Identity)
	return identity
}

func writeAuthError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.ErrInternal
	}
	return c.Status(appErr.StatusCode).JSON(fiber.Map{
		"message": appErr.Message,
		"success": false,
		"status":  appErr.StatusCode,
	})
}
