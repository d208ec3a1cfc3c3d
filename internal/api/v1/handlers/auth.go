package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"task-management/internal/apperrors"
	"task-management/internal/service"
	"task-management/internal/token"
	"task-management/pkg/logger"
)

// AuthResponse adalah body sukses untuk register dan login.
// Token null pada register karena registrasi tidak langsung login.
type AuthResponse struct {
	Token    *string `json:"token"`
	Username string  `json:"username"`
	Message  string  `json:"message"`
}

type AuthHandler struct {
	users  *service.UserService
	tokens *token.Issuer
}

func NewAuthHandler(users *service.UserService, tokens *token.Issuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Register menangani POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return respondBadRequest(c, "Bad request")
	}

	if violations := req.Validate(); violations != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.String("username", req.Username))
		return respondError(c, apperrors.NewValidationError(violations))
	}

	user, err := h.users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Token:    nil,
		Username: user.Username,
		Message:  "User registered successfully",
	})
}

// Login menangani POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return respondBadRequest(c, "Bad request")
	}

	if violations := req.Validate(); violations != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.String("username", req.Username))
		return respondError(c, apperrors.NewValidationError(violations))
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	// Mint token JWT untuk identity yang sudah terverifikasi
	tokenString, err := h.tokens.Issue(user.Username)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(AuthResponse{
		Token:    &tokenString,
		Username: user.Username,
		Message:  "Login successful",
	})
}
