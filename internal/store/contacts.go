package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Emails and phones are stored comma-joined in a single column.
func joinList(vals []string) string {
	return strings.Join(vals, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// AddContact inserts a contact and returns its id.
func (s *SQLiteStore) AddContact(ctx context.Context, c *Contact) (int64, error) {
	if c.UserID == "" {
		c.UserID = "default"
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (name, emails, phones, company, position, department, notes, created_at, updated_at, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, joinList(c.Emails), joinList(c.Phones), c.Company, c.Position, c.Department, c.Notes, now, now, c.UserID)
	if err != nil {
		return 0, fmt.Errorf("inserting contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading contact id: %w", err)
	}
	c.ID = id
	return id, nil
}

func scanContact(scan func(dest ...any) error) (*Contact, error) {
	c := &Contact{}
	var emails, phones string
	if err := scan(&c.ID, &c.Name, &emails, &phones, &c.Company, &c.Position, &c.Department, &c.Notes, &c.CreatedAt, &c.UpdatedAt, &c.UserID); err != nil {
		return nil, err
	}
	c.Emails = splitList(emails)
	c.Phones = splitList(phones)
	return c, nil
}

const contactColumns = `id, name, emails, phones, company, position, department, notes, created_at, updated_at, user_id`

// FindContact looks up a contact by name, or by name and email when
// email is non-empty. A contact with a matching email anywhere in its
// email list counts as a match. Returns sql.ErrNoRows when absent.
func (s *SQLiteStore) FindContact(ctx context.Context, name, email string) (*Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE name = ? ORDER BY id ASC`, name)
	if err != nil {
		return nil, fmt.Errorf("finding contact: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		if email == "" {
			return c, nil
		}
		for _, e := range c.Emails {
			if e == email {
				return c, nil
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nil, sql.ErrNoRows
}

// ListContacts returns all contacts ordered by name.
func (s *SQLiteStore) ListContacts(ctx context.Context) ([]*Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var out []*Contact
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SearchContacts matches the query against name, company, position and
// emails with a substring search.
func (s *SQLiteStore) SearchContacts(ctx context.Context, query string) ([]*Contact, error) {
	like := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts
		 WHERE name LIKE ? OR company LIKE ? OR position LIKE ? OR emails LIKE ?
		 ORDER BY name ASC, id ASC`,
		like, like, like, like)
	if err != nil {
		return nil, fmt.Errorf("searching contacts: %w", err)
	}
	defer rows.Close()

	var out []*Contact
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
