package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskshare/models"
)

// TaskRepository handles Task persistence including share grants.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// taskColumns aggregates share grants next to each task row. GROUP_CONCAT
// keeps duplicate grants, which the share semantics require.
const taskColumns = `t.id, t.title, t.completed, t.owner_username, t.created_at, GROUP_CONCAT(s.shared_with)`

const taskJoin = `FROM tasks t LEFT JOIN task_shares s ON s.task_id = t.id`

// Create inserts a new task. Completed defaults to false and the share set
// starts empty.
func (r *TaskRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	if t == nil {
		return nil, errors.New("task is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO tasks (title, completed, owner_username) VALUES (?, ?, ?)`,
		t.Title, t.Completed, t.OwnerUsername)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	t2, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t2 == nil {
		return nil, fmt.Errorf("created task not found: id=%d", id)
	}
	return t2, nil
}

// GetByID fetches a task by its ID, shares included. Missing rows return (nil, nil).
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` `+taskJoin+` WHERE t.id = ? GROUP BY t.id`, id)
	t, err := scanTaskRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// ListByOwner returns the tasks owned by owner in insertion order. This is the
// listing every owner-only select-by-index operation works over.
func (r *TaskRepository) ListByOwner(ctx context.Context, owner string) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` `+taskJoin+`
WHERE t.owner_username = ?
GROUP BY t.id
ORDER BY t.id`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTaskRows(rows)
}

// ListVisibleTo returns tasks the user owns plus tasks shared with them,
// in insertion order.
func (r *TaskRepository) ListVisibleTo(ctx context.Context, username string) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` `+taskJoin+`
WHERE t.owner_username = ?
   OR EXISTS (SELECT 1 FROM task_shares v WHERE v.task_id = t.id AND v.shared_with = ?)
GROUP BY t.id
ORDER BY t.id`, username, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTaskRows(rows)
}

func (r *TaskRepository) UpdateTitle(ctx context.Context, id int64, title string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET title = ? WHERE id = ?`, title, id)
	return err
}

func (r *TaskRepository) MarkCompleted(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET completed = 1 WHERE id = ?`, id)
	return err
}

// AddShare appends a share grant. Deliberately no dedup: repeated shares
// append repeated rows.
func (r *TaskRepository) AddShare(ctx context.Context, id int64, username string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `INSERT INTO task_shares (task_id, shared_with) VALUES (?, ?)`, id, username)
	return err
}

// Delete removes a task; its share rows go with it via FK cascade.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// DeleteByOwner removes every task owned by owner. Share rows on those tasks
// cascade; grants naming owner on other users' tasks are left dangling on purpose.
func (r *TaskRepository) DeleteByOwner(ctx context.Context, owner string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE owner_username = ?`, owner)
	return err
}

// scanTaskRow scans one aggregated task row via the given scan function.
func scanTaskRow(scan func(dest ...any) error) (*models.Task, error) {
	var t models.Task
	var sharedCSV sql.NullString
	if err := scan(&t.ID, &t.Title, &t.Completed, &t.OwnerUsername, &t.CreatedAt, &sharedCSV); err != nil {
		return nil, err
	}
	if sharedCSV.Valid && sharedCSV.String != "" {
		t.SharedWith = strings.Split(sharedCSV.String, ",")
	}
	return &t, nil
}

func scanTaskRows(rows *sql.Rows) ([]models.Task, error) {
	var out []models.Task
	for rows.Next() {
		t, err := scanTaskRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
