package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"task-management/internal/apperrors"
	"task-management/internal/models"
)

// UserRepository membungkus akses tabel users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create menyisipkan user baru dan mengembalikan record lengkapnya.
// Unique violation (race dengan pre-check di service) dipetakan ke
// error duplicate yang sesuai dengan constraint yang dilanggar.
func (r *UserRepository) Create(username, email, passwordHash string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(
		"INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id, username, email, created_at, updated_at",
		username, email, passwordHash,
	).Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "email") {
				return nil, apperrors.ErrEmailTaken
			}
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername mengembalikan (nil, nil) jika user tidak ditemukan.
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(
		"SELECT id, username, email, password, created_at, updated_at FROM users WHERE username = $1",
		username,
	).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)",
		username,
	).Scan(&exists)
	return exists, err
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)",
		email,
	).Scan(&exists)
	return exists, err
}
