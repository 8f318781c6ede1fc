package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AddEvent inserts a calendar event and returns its id.
func (s *SQLiteStore) AddEvent(ctx context.Context, e *CalendarEvent) (int64, error) {
	if e.UserID == "" {
		e.UserID = "default"
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO calendar_events (summary, description, start_time, end_time, created_at, user_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Summary, e.Description, e.Start, e.End, time.Now().UTC(), e.UserID)
	if err != nil {
		return 0, fmt.Errorf("inserting event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading event id: %w", err)
	}
	e.ID = id
	return id, nil
}

// GetEvent fetches one event by id. Returns sql.ErrNoRows when absent.
func (s *SQLiteStore) GetEvent(ctx context.Context, id int64) (*CalendarEvent, error) {
	e := &CalendarEvent{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, summary, description, start_time, end_time, created_at, user_id
		 FROM calendar_events WHERE id = ?`, id).
		Scan(&e.ID, &e.Summary, &e.Description, &e.Start, &e.End, &e.CreatedAt, &e.UserID)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEvents returns all events, latest start first.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]*CalendarEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, summary, description, start_time, end_time, created_at, user_id
		 FROM calendar_events ORDER BY start_time DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var out []*CalendarEvent
	for rows.Next() {
		e := &CalendarEvent{}
		if err := rows.Scan(&e.ID, &e.Summary, &e.Description, &e.Start, &e.End, &e.CreatedAt, &e.UserID); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateEvent rewrites the mutable fields of an event.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, e *CalendarEvent) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE calendar_events SET summary = ?, description = ?, start_time = ?, end_time = ?
		 WHERE id = ?`,
		e.Summary, e.Description, e.Start, e.End, e.ID)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
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

// DeleteEvent removes an event by id.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
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
