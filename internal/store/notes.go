package store

import (
	"context"
	"fmt"
	"time"
)

// AddNote inserts a note and returns its id.
func (s *SQLiteStore) AddNote(ctx context.Context, n *Note) (int64, error) {
	if n.UserID == "" {
		n.UserID = "default"
	}
	if n.Category == "" {
		n.Category = "general"
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (title, content, category, created_at, user_id)
		 VALUES (?, ?, ?, ?, ?)`,
		n.Title, n.Content, n.Category, time.Now().UTC(), n.UserID)
	if err != nil {
		return 0, fmt.Errorf("inserting note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading note id: %w", err)
	}
	n.ID = id
	return id, nil
}

// ListNotes returns all notes, newest first.
func (s *SQLiteStore) ListNotes(ctx context.Context) ([]*Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, category, created_at, user_id
		 FROM notes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var out []*Note
	for rows.Next() {
		n := &Note{}
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Category, &n.CreatedAt, &n.UserID); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
