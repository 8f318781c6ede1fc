package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Task status values.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// AddTask inserts a task and returns its id.
func (s *SQLiteStore) AddTask(ctx context.Context, t *Task) (int64, error) {
	if t.UserID == "" {
		t.UserID = "default"
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityLow
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, start_date, end_date, status, priority, created_at, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.StartDate, t.EndDate, t.Status, t.Priority, time.Now().UTC(), t.UserID)
	if err != nil {
		return 0, fmt.Errorf("inserting task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading task id: %w", err)
	}
	t.ID = id
	return id, nil
}

// GetTask fetches one task by id. Returns sql.ErrNoRows when absent.
func (s *SQLiteStore) GetTask(ctx context.Context, id int64) (*Task, error) {
	t := &Task{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, start_date, end_date, status, priority, created_at, user_id
		 FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.StartDate, &t.EndDate, &t.Status, &t.Priority, &t.CreatedAt, &t.UserID)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasks returns all tasks, newest first.
func (s *SQLiteStore) ListTasks(ctx context.Context) ([]*Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, start_date, end_date, status, priority, created_at, user_id
		 FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		t := &Task{}
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.StartDate, &t.EndDate, &t.Status, &t.Priority, &t.CreatedAt, &t.UserID); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ValidStatus reports whether status is a recognized task status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// UpdateTaskStatus changes a task's status. Returns sql.ErrNoRows when
// the task does not exist and an error for unrecognized statuses.
func (s *SQLiteStore) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("invalid task status %q", status)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteTask removes a task by id.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
