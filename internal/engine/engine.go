// Package engine orchestrates the work-input pipeline: analyze the
// text, classify it, route it to the record builders, and persist the
// derived records.
package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/minseo-dev/daylog/internal/analyze"
	"github.com/minseo-dev/daylog/internal/classify"
	"github.com/minseo-dev/daylog/internal/record"
	"github.com/minseo-dev/daylog/internal/store"
)

// Output is the full result of processing one work input.
type Output struct {
	Category     string                 `json:"category"`
	Confidence   float64                `json:"confidence"`
	OriginalText string                 `json:"original_text"`
	Keywords     []string               `json:"keywords"`
	Entities     analyze.Entities       `json:"entities"`
	Dates        []string               `json:"dates"`
	Times        []string               `json:"times"`
	Sentiment    string                 `json:"sentiment"`
	Events       []*store.CalendarEvent `json:"calendar_events"`
	Notes        []*store.Note          `json:"obsidian_notes"`
	Tasks        []*store.Task          `json:"gantt_tasks"`
	Contact      *store.Contact         `json:"contact_info,omitempty"`
}

// Engine wires the analyzer, classifier and store together.
type Engine struct {
	analyzer *analyze.Analyzer
	store    store.Store
	now      func() time.Time
}

// New builds an Engine over the given analyzer and store.
func New(analyzer *analyze.Analyzer, st store.Store) *Engine {
	return &Engine{analyzer: analyzer, store: st, now: time.Now}
}

// Process runs the full pipeline for one input. Category decides which
// records get created: schedule inputs become calendar events, meetings
// become an event plus a note, work logs become tasks, and general
// inputs create nothing. A contact is extracted whenever the analysis
// found persons, regardless of category. Every input also lands in the
// work-log history.
func (e *Engine) Process(ctx context.Context, text, userID string) (*Output, error) {
	res, err := e.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("processing work input: %w", err)
	}

	cls := classify.Run(classify.Text(text))
	res.Category = cls.Category
	res.Confidence = cls.Confidence

	out := &Output{
		Category:     res.Category,
		Confidence:   res.Confidence,
		OriginalText: res.OriginalText,
		Keywords:     res.Keywords,
		Entities:     res.Entities,
		Dates:        res.Dates,
		Times:        res.Times,
		Sentiment:    res.Sentiment,
		Events:       []*store.CalendarEvent{},
		Notes:        []*store.Note{},
		Tasks:        []*store.Task{},
	}

	now := e.now()
	switch res.Category {
	case classify.CategorySchedule:
		if err := e.addEvent(ctx, out, res, now, userID); err != nil {
			return nil, err
		}
	case classify.CategoryMeeting:
		if err := e.addEvent(ctx, out, res, now, userID); err != nil {
			return nil, err
		}
		if err := e.addNote(ctx, out, res, userID); err != nil {
			return nil, err
		}
	case classify.CategoryWorkLog:
		if err := e.addTask(ctx, out, res, now, userID); err != nil {
			return nil, err
		}
	}

	if len(res.Entities.Persons) > 0 {
		contact, err := e.saveContact(ctx, res, userID)
		if err != nil {
			return nil, err
		}
		out.Contact = contact
	}

	if _, err := e.store.SaveWorkLog(ctx, &store.WorkLog{
		Text:     text,
		Category: res.Category,
		UserID:   userID,
	}); err != nil {
		return nil, fmt.Errorf("saving work log: %w", err)
	}

	return out, nil
}

func (e *Engine) addEvent(ctx context.Context, out *Output, res *analyze.Result, now time.Time, userID string) error {
	ev := record.BuildEvent(res, now, userID)
	if _, err := e.store.AddEvent(ctx, ev); err != nil {
		return fmt.Errorf("saving calendar event: %w", err)
	}
	out.Events = append(out.Events, ev)
	return nil
}

func (e *Engine) addNote(ctx context.Context, out *Output, res *analyze.Result, userID string) error {
	n := record.BuildNote(res, userID)
	if _, err := e.store.AddNote(ctx, n); err != nil {
		return fmt.Errorf("saving note: %w", err)
	}
	out.Notes = append(out.Notes, n)
	return nil
}

func (e *Engine) addTask(ctx context.Context, out *Output, res *analyze.Result, now time.Time, userID string) error {
	t := record.BuildTask(res, now, userID)
	if _, err := e.store.AddTask(ctx, t); err != nil {
		return fmt.Errorf("saving task: %w", err)
	}
	out.Tasks = append(out.Tasks, t)
	return nil
}

// saveContact extracts contact details for the first person and stores
// them unless a contact with the same name and email already exists, in
// which case the existing record is returned.
func (e *Engine) saveContact(ctx context.Context, res *analyze.Result, userID string) (*store.Contact, error) {
	c := record.ExtractContact(res.OriginalText, res.Entities.Persons[0], userID)

	email := ""
	if len(c.Emails) > 0 {
		email = c.Emails[0]
	}
	existing, err := e.store.FindContact(ctx, c.Name, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("looking up contact: %w", err)
	}

	if _, err := e.store.AddContact(ctx, c); err != nil {
		return nil, fmt.Errorf("saving contact: %w", err)
	}
	return c, nil
}
