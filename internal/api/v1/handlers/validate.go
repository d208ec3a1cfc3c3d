package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"task-management/internal/apperrors"
)

// Validator instance dipakai bersama oleh semua handler
var validate = validator.New()

// RegisterRequest menerima inputan registrasi dari user
type RegisterRequest struct {
	Username string `json:"username" validate:"required,excludesall=@?"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *RegisterRequest) Validate() []apperrors.FieldViolation {
	return validateStruct(r)
}

// LoginRequest menerima inputan login dari user
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() []apperrors.FieldViolation {
	return validateStruct(r)
}

// CreateTaskRequest menerima inputan task baru. Tidak ada field owner:
// owner selalu diambil dari identity yang sudah terautentikasi.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Status      string `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

func (r *CreateTaskRequest) Validate() []apperrors.FieldViolation {
	return validateStruct(r)
}

// UpdateTaskRequest menerima update parsial.
// Pointer (*) untuk menandakan bahwa field bisa kosong.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *string `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

func (r *UpdateTaskRequest) Validate() []apperrors.FieldViolation {
	return validateStruct(r)
}

// validateStruct menerjemahkan error dari validator menjadi daftar
// pelanggaran per field yang bisa langsung dikirim sebagai body 400.
func validateStruct(req interface{}) []apperrors.FieldViolation {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.FieldViolation{{Field: "request", Message: err.Error()}}
	}

	violations := make([]apperrors.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, apperrors.FieldViolation{
			Field:   strings.ToLower(fe.Field()),
			Message: violationMessage(fe),
		})
	}
	return violations
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "excludesall":
		return "contains characters that are not allowed"
	default:
		return "is invalid"
	}
}
