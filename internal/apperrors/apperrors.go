package apperrors

import (
	"errors"
	"net/http"
)

// FieldViolation menjelaskan satu field request yang tidak valid.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError adalah satu-satunya jenis error yang boleh melewati service layer.
// Error mentah dari storage/library diterjemahkan dulu ke salah satu nilai di bawah.
type AppError struct {
	Message    string
	StatusCode int
	Violations []FieldViolation
}

func (e *AppError) Error() string {
	return e.Message
}

// StatusCode mengembalikan status HTTP untuk sebuah error.
// Error yang bukan *AppError dianggap kegagalan internal.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// NewValidationError membungkus daftar pelanggaran field menjadi error 400.
func NewValidationError(violations []FieldViolation) *AppError {
	return &AppError{
		Message:    "Validation error",
		StatusCode: http.StatusBadRequest,
		Violations: violations,
	}
}

var (
	// Login gagal: sengaja tidak membedakan user tidak ada vs password salah
	ErrInvalidCredentials = &AppError{
		Message:    "Invalid username or password",
		StatusCode: http.StatusUnauthorized,
	}

	ErrNoToken = &AppError{
		Message:    "No token provided",
		StatusCode: http.StatusUnauthorized,
	}

	ErrInvalidTokenFormat = &AppError{
		Message:    "Invalid token format",
		StatusCode: http.StatusUnauthorized,
	}

	ErrMalformedToken = &AppError{
		Message:    "Invalid token",
		StatusCode: http.StatusUnauthorized,
	}

	ErrBadSignature = &AppError{
		Message:    "Invalid token",
		StatusCode: http.StatusUnauthorized,
	}

	ErrTokenExpired = &AppError{
		Message:    "Token expired",
		StatusCode: http.StatusUnauthorized,
	}

	// Token valid tapi user di dalamnya sudah tidak ada di database
	ErrUnknownPrincipal = &AppError{
		Message:    "User not found",
		StatusCode: http.StatusNotFound,
	}

	// Task tidak ada ATAU milik user lain, keduanya dibuat tidak bisa dibedakan
	ErrTaskNotFound = &AppError{
		Message:    "Task not found or access denied",
		StatusCode: http.StatusNotFound,
	}

	ErrUsernameTaken = &AppError{
		Message:    "Username already exists",
		StatusCode: http.StatusBadRequest,
	}

	ErrEmailTaken = &AppError{
		Message:    "Email already exists",
		StatusCode: http.StatusBadRequest,
	}

	ErrInternal = &AppError{
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
	}
)
