package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewStore(Config{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStoreCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "daylog.db")
	s, err := NewStore(Config{DBPath: path})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	// migrate is idempotent, reopening must not fail
	s2, err := NewStore(Config{DBPath: path})
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	s2.Close()
}

func TestEventCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	e := &CalendarEvent{
		Summary:     "프로젝트 회의",
		Description: "내일 오후 2시에 프로젝트 회의",
		Start:       start,
		End:         start.Add(time.Hour),
	}
	id, err := s.AddEvent(ctx, e)
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if id == 0 {
		t.Fatal("AddEvent returned id 0")
	}

	got, err := s.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.Summary != e.Summary {
		t.Errorf("summary = %q, want %q", got.Summary, e.Summary)
	}
	if got.UserID != "default" {
		t.Errorf("user id = %q, want default", got.UserID)
	}
	if !got.Start.Equal(start) {
		t.Errorf("start = %v, want %v", got.Start, start)
	}

	got.Summary = "주간 회의"
	if err := s.UpdateEvent(ctx, got); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	got2, err := s.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("GetEvent after update: %v", err)
	}
	if got2.Summary != "주간 회의" {
		t.Errorf("summary after update = %q", got2.Summary)
	}

	events, err := s.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}

	if err := s.DeleteEvent(ctx, id); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, err := s.GetEvent(ctx, id); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetEvent after delete: err = %v, want sql.ErrNoRows", err)
	}
	if err := s.DeleteEvent(ctx, id); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("second DeleteEvent: err = %v, want sql.ErrNoRows", err)
	}
}

func TestUpdateEventMissing(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateEvent(context.Background(), &CalendarEvent{ID: 999, Summary: "x"})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestEventsOrderedByStart(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	later := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	if _, err := s.AddEvent(ctx, &CalendarEvent{Summary: "earlier", Start: earlier, End: earlier.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddEvent(ctx, &CalendarEvent{Summary: "later", Start: later, End: later.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}

	events, err := s.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].Summary != "later" || events[1].Summary != "earlier" {
		t.Errorf("events not ordered latest start first: %+v", events)
	}
}

func TestNotes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n := &Note{Title: "팀 회의", Content: "# 팀 회의\n\n회의록 본문", Category: "meeting"}
	id, err := s.AddNote(ctx, n)
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if id == 0 {
		t.Fatal("AddNote returned id 0")
	}

	notes, err := s.ListNotes(ctx)
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("len(notes) = %d, want 1", len(notes))
	}
	if notes[0].Category != "meeting" {
		t.Errorf("category = %q, want meeting", notes[0].Category)
	}
}

func TestNoteDefaultCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddNote(ctx, &Note{Title: "t", Content: "c"}); err != nil {
		t.Fatal(err)
	}
	notes, err := s.ListNotes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if notes[0].Category != "general" {
		t.Errorf("category = %q, want general", notes[0].Category)
	}
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tk := &Task{
		Title:       "보고서 작성",
		Description: "보고서 작성 작업 완료 해야 함",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7),
		Priority:    PriorityHigh,
	}
	id, err := s.AddTask(ctx, tk)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	got, err := s.GetTask(ctx, id)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Status != StatusPending {
		t.Errorf("status = %q, want pending", got.Status)
	}
	if got.Priority != PriorityHigh {
		t.Errorf("priority = %q, want high", got.Priority)
	}

	if err := s.UpdateTaskStatus(ctx, id, StatusInProgress); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	got, err = s.GetTask(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusInProgress {
		t.Errorf("status = %q, want in_progress", got.Status)
	}

	if err := s.UpdateTaskStatus(ctx, id, "bogus"); err == nil {
		t.Error("UpdateTaskStatus accepted invalid status")
	}
	if err := s.UpdateTaskStatus(ctx, 999, StatusCompleted); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("missing task: err = %v, want sql.ErrNoRows", err)
	}

	if err := s.DeleteTask(ctx, id); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := s.GetTask(ctx, id); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetTask after delete: err = %v", err)
	}
}

func TestContacts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &Contact{
		Name:     "김철수",
		Emails:   []string{"kim@example.com", "cskim@corp.co.kr"},
		Phones:   []string{"010-1234-5678"},
		Company:  "삼성전자",
		Position: "팀장",
	}
	if _, err := s.AddContact(ctx, c); err != nil {
		t.Fatalf("AddContact: %v", err)
	}

	got, err := s.FindContact(ctx, "김철수", "")
	if err != nil {
		t.Fatalf("FindContact by name: %v", err)
	}
	if len(got.Emails) != 2 || got.Emails[1] != "cskim@corp.co.kr" {
		t.Errorf("emails = %v", got.Emails)
	}

	got, err = s.FindContact(ctx, "김철수", "cskim@corp.co.kr")
	if err != nil {
		t.Fatalf("FindContact by name+email: %v", err)
	}
	if got.Company != "삼성전자" {
		t.Errorf("company = %q", got.Company)
	}

	if _, err := s.FindContact(ctx, "김철수", "other@example.com"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("mismatched email: err = %v, want sql.ErrNoRows", err)
	}
	if _, err := s.FindContact(ctx, "박영희", ""); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("unknown name: err = %v, want sql.ErrNoRows", err)
	}
}

func TestSearchContacts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	contacts := []*Contact{
		{Name: "김철수", Company: "삼성전자", Emails: []string{"kim@samsung.com"}},
		{Name: "박영희", Company: "LG전자", Position: "부장"},
		{Name: "이민호", Company: "네이버"},
	}
	for _, c := range contacts {
		if _, err := s.AddContact(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		query string
		want  int
	}{
		{"전자", 2},
		{"김철수", 1},
		{"samsung", 1},
		{"부장", 1},
		{"없는사람", 0},
	}
	for _, tt := range tests {
		got, err := s.SearchContacts(ctx, tt.query)
		if err != nil {
			t.Fatalf("SearchContacts(%q): %v", tt.query, err)
		}
		if len(got) != tt.want {
			t.Errorf("SearchContacts(%q) returned %d contacts, want %d", tt.query, len(got), tt.want)
		}
	}
}

func TestWorkLogs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	texts := []string{"첫 번째 입력", "두 번째 입력", "세 번째 입력"}
	for _, txt := range texts {
		if _, err := s.SaveWorkLog(ctx, &WorkLog{Text: txt, Category: "work_log"}); err != nil {
			t.Fatalf("SaveWorkLog: %v", err)
		}
	}

	logs, err := s.ListWorkLogs(ctx, 2)
	if err != nil {
		t.Fatalf("ListWorkLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("len(logs) = %d, want 2", len(logs))
	}
	// newest first
	if logs[0].Text != "세 번째 입력" {
		t.Errorf("logs[0].Text = %q", logs[0].Text)
	}

	all, err := s.ListWorkLogs(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if _, err := s.AddEvent(ctx, &CalendarEvent{Summary: "e", Start: now, End: now.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddNote(ctx, &Note{Title: "n", Content: "c"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveWorkLog(ctx, &WorkLog{Text: "w"}); err != nil {
		t.Fatal(err)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.EventCount != 1 || st.NoteCount != 1 || st.WorkLogCount != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.TaskCount != 0 || st.ContactCount != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("expandPath absolute = %q", got)
	}
	got := expandPath("~/.daylog/daylog.db")
	if got == "~/.daylog/daylog.db" {
		t.Skip("no home directory available")
	}
	if filepath.Base(got) != "daylog.db" {
		t.Errorf("expandPath = %q", got)
	}
}
