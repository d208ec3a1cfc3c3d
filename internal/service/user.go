package service

import (
	"go.uber.org/zap"

	"task-management/internal/apperrors"
	"task-management/internal/models"
	"task-management/internal/repository"
	"task-management/pkg/crypto"
	"task-management/pkg/logger"
)

// UserService menangani registrasi dan autentikasi credential.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register membuat user baru. Username dan email harus unik;
// password disimpan sebagai digest bcrypt, tidak pernah plaintext.
func (s *UserService) Register(username, email, password string) (*models.User, error) {
	exists, err := s.users.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.SecurityLogger.Warn("Duplicate username", zap.String("username", username))
		return nil, apperrors.ErrUsernameTaken
	}

	exists, err = s.users.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.SecurityLogger.Warn("Duplicate email", zap.String("email", email))
		return nil, apperrors.ErrEmailTaken
	}

	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(username, email, hashedPassword)
	if err != nil {
		return nil, err
	}

	logger.AuditLogger.Info("User registered successfully", zap.Int("user_id", user.ID))
	return user, nil
}

// Authenticate memverifikasi pasangan username/password.
// User tidak ditemukan dan password salah sengaja menghasilkan error
// yang sama supaya username tidak bisa di-enumerate lewat respons.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logger.SecurityLogger.Warn("Failed login attempt", zap.String("username", username))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !crypto.CheckPassword(password, user.Password) {
		logger.SecurityLogger.Warn("Failed login attempt", zap.String("username", username))
		return nil, apperrors.ErrInvalidCredentials
	}

	logger.AuditLogger.Info("Successful login", zap.Int("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// ResolvePrincipal memetakan username hasil verifikasi token ke Identity.
// Dipanggil setiap request ber-token; gagal jika user-nya sudah dihapus.
func (s *UserService) ResolvePrincipal(username string) (models.Identity, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return models.Identity{}, err
	}
	if user == nil {
		logger.SecurityLogger.Warn("Token for unknown user", zap.String("username", username))
		return models.Identity{}, apperrors.ErrUnknownPrincipal
	}
	return models.Identity{ID: user.ID, Username: user.Username}, nil
}
