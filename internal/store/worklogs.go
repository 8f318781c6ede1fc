package store

import (
	"context"
	"fmt"
	"time"
)

// SaveWorkLog inserts one raw input record and returns its id.
func (s *SQLiteStore) SaveWorkLog(ctx context.Context, w *WorkLog) (int64, error) {
	if w.UserID == "" {
		w.UserID = "default"
	}
	if w.Category == "" {
		w.Category = "general"
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO work_logs (text, category, created_at, updated_at, user_id)
		 VALUES (?, ?, ?, ?, ?)`,
		w.Text, w.Category, now, now, w.UserID)
	if err != nil {
		return 0, fmt.Errorf("inserting work log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading work log id: %w", err)
	}
	w.ID = id
	return id, nil
}

// ListWorkLogs returns the most recent work logs, newest first.
// A non-positive limit returns all rows.
func (s *SQLiteStore) ListWorkLogs(ctx context.Context, limit int) ([]*WorkLog, error) {
	q := `SELECT id, text, category, created_at, updated_at, user_id
	      FROM work_logs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work logs: %w", err)
	}
	defer rows.Close()

	var out []*WorkLog
	for rows.Next() {
		w := &WorkLog{}
		if err := rows.Scan(&w.ID, &w.Text, &w.Category, &w.CreatedAt, &w.UpdatedAt, &w.UserID); err != nil {
			return nil, fmt.Errorf("scanning work log: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
