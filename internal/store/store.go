// Package store provides the SQLite storage layer for daylog.
//
// All derived records live in a single SQLite database file: calendar
// events, notes, project tasks, contacts, and the raw work-log history.
// The analysis result itself is never persisted, only the records each
// generator derives from it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.daylog/daylog.db"

// CalendarEvent is a persisted schedule entry.
type CalendarEvent struct {
	ID          int64     `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      string    `json:"user_id"`
}

// Note is a persisted markdown note derived from a meeting input.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"` // meeting, work_log, schedule, general
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
}

// Task is a persisted project task derived from a work-log input.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`   // pending, in_progress, completed
	Priority    string    `json:"priority"` // low, medium, high
	CreatedAt   time.Time `json:"created_at"`
	UserID      string    `json:"user_id"`
}

// Contact is a persisted person record extracted from input text.
type Contact struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Emails     []string  `json:"emails"`
	Phones     []string  `json:"phones"`
	Company    string    `json:"company"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     string    `json:"user_id"`
}

// WorkLog is one raw input with its assigned category.
type WorkLog struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id"`
}

// Stats holds observability counters for the store.
type Stats struct {
	EventCount   int64 `json:"calendar_events"`
	NoteCount    int64 `json:"notes"`
	TaskCount    int64 `json:"tasks"`
	ContactCount int64 `json:"contacts"`
	WorkLogCount int64 `json:"work_logs"`
}

// Store defines the persistence interface consumed by the record
// generators and the service surfaces.
type Store interface {
	// Calendar events
	AddEvent(ctx context.Context, e *CalendarEvent) (int64, error)
	GetEvent(ctx context.Context, id int64) (*CalendarEvent, error)
	ListEvents(ctx context.Context) ([]*CalendarEvent, error)
	UpdateEvent(ctx context.Context, e *CalendarEvent) error
	DeleteEvent(ctx context.Context, id int64) error

	// Notes
	AddNote(ctx context.Context, n *Note) (int64, error)
	ListNotes(ctx context.Context) ([]*Note, error)

	// Tasks
	AddTask(ctx context.Context, t *Task) (int64, error)
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, status string) error
	DeleteTask(ctx context.Context, id int64) error

	// Contacts
	AddContact(ctx context.Context, c *Contact) (int64, error)
	FindContact(ctx context.Context, name, email string) (*Contact, error)
	ListContacts(ctx context.Context) ([]*Contact, error)
	SearchContacts(ctx context.Context, query string) ([]*Contact, error)

	// Work logs
	SaveWorkLog(ctx context.Context, w *WorkLog) (int64, error)
	ListWorkLogs(ctx context.Context, limit int) ([]*WorkLog, error)

	// Observability
	Stats(ctx context.Context) (*Stats, error)

	Close() error
}

// Config holds configuration for NewStore.
type Config struct {
	DBPath string
}

// SQLiteStore implements Store on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (and migrates) a SQLite-backed Store.
// Pass ":memory:" for in-memory databases (testing).
func NewStore(cfg Config) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = expandPath(DefaultDBPath)
	}

	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: cfg.DBPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Stats returns row counts per table.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{}
	counts := []struct {
		table string
		dest  *int64
	}{
		{"calendar_events", &st.EventCount},
		{"notes", &st.NoteCount},
		{"tasks", &st.TaskCount},
		{"contacts", &st.ContactCount},
		{"work_logs", &st.WorkLogCount},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting %s: %w", c.table, err)
		}
	}
	return st, nil
}

// expandPath expands ~ to the home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
