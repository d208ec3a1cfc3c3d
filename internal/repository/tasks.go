package repository

import (
	"database/sql"
	"errors"

	"task-management/internal/models"
)

// TaskRepository membungkus akses tabel tasks.
// Semua query yang menyentuh satu task selalu difilter dengan user_id
// sehingga task milik user lain tidak pernah ikut terbaca.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = "id, user_id, title, description, status, priority, created_at, updated_at"

func scanTask(row *sql.Row) (*models.Task, error) {
	var task models.Task
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Create menyisipkan task baru. Owner selalu userID yang diberikan,
// satu row dalam satu statement sehingga insert-nya atomic.
func (r *TaskRepository) Create(userID int, title, description, status, priority string) (*models.Task, error) {
	return scanTask(r.db.QueryRow(
		"INSERT INTO tasks (user_id, title, description, status, priority) VALUES ($1, $2, $3, $4, $5) RETURNING "+taskColumns,
		userID, title, description, status, priority,
	))
}

// FindByIDAndOwner mengembalikan (nil, nil) jika task tidak ada
// atau bukan milik userID. Dua kasus itu sengaja tidak dibedakan.
func (r *TaskRepository) FindByIDAndOwner(taskID, userID int) (*models.Task, error) {
	task, err := scanTask(r.db.QueryRow(
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND user_id = $2",
		taskID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) ListByOwner(userID int) ([]models.Task, error) {
	rows, err := r.db.Query(
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = $1 ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepository) ListByOwnerAndStatus(userID int, status string) ([]models.Task, error) {
	rows, err := r.db.Query(
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = $1 AND status = $2 ORDER BY id",
		userID, status,
	)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepository) ListByOwnerAndPriority(userID int, priority string) ([]models.Task, error) {
	rows, err := r.db.Query(
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = $1 AND priority = $2 ORDER BY id",
		userID, priority,
	)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// Update menulis field yang boleh berubah dalam satu statement.
// Owner (user_id) tidak pernah ikut di-set.
func (r *TaskRepository) Update(taskID, userID int, title, description, status, priority string) (*models.Task, error) {
	task, err := scanTask(r.db.QueryRow(
		`UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5 AND user_id = $6
		RETURNING `+taskColumns,
		title, description, status, priority, taskID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete menghapus task milik userID. Mengembalikan false jika tidak
// ada row yang terhapus (task tidak ada atau milik user lain).
func (r *TaskRepository) Delete(taskID, userID int) (bool, error) {
	result, err := r.db.Exec(
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2",
		taskID, userID,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func collectTasks(rows *sql.Rows) ([]models.Task, error) {
	// .Close() digunakan untuk menutup koneksi setelah selesai digunakan
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description,
			&task.Status, &task.Priority, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
