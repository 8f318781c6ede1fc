package record

import (
	"strings"
	"testing"
	"time"

	"github.com/minseo-dev/daylog/internal/analyze"
)

// 2024-01-15 is a Monday.
var base = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  time.Time
	}{
		{"no dates", nil, base},
		{"today", []string{"오늘"}, base},
		{"tomorrow", []string{"내일"}, base.AddDate(0, 0, 1)},
		{"day after tomorrow", []string{"모레"}, base.AddDate(0, 0, 2)},
		{"next week lands on monday", []string{"다음주"}, time.Date(2024, 1, 22, 10, 30, 0, 0, time.UTC)},
		{"compound next week", []string{"다음주 월요일"}, time.Date(2024, 1, 22, 10, 30, 0, 0, time.UTC)},
		{"explicit date falls back to now", []string{"2024년 1월 20일"}, base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseEventDate(tt.dates, base)
			if !got.Equal(tt.want) {
				t.Errorf("parseEventDate(%v) = %v, want %v", tt.dates, got, tt.want)
			}
		})
	}
}

func TestParseEventDateFromWednesday(t *testing.T) {
	wed := time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)
	got := parseEventDate([]string{"다음주"}, wed)
	want := time.Date(2024, 1, 22, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseEventDate from wednesday = %v, want %v", got, want)
	}
}

func TestParseEventTime(t *testing.T) {
	tests := []struct {
		name       string
		times      []string
		wantHour   int
		wantMinute int
	}{
		{"no times keeps target clock", nil, 10, 30},
		{"pm hour", []string{"오후 3시"}, 15, 0},
		{"pm noon stays", []string{"오후 12시"}, 12, 0},
		{"am hour", []string{"오전 10시"}, 10, 0},
		{"am midnight", []string{"오전 12시"}, 0, 0},
		{"bare early hour rolls to pm", []string{"3시"}, 15, 0},
		{"bare late hour kept", []string{"10시"}, 10, 0},
		{"minutes", []string{"오후 2시 30분"}, 14, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := parseEventTime(tt.times, base)
			if h != tt.wantHour || m != tt.wantMinute {
				t.Errorf("parseEventTime(%v) = %d:%02d, want %d:%02d", tt.times, h, m, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestBuildEvent(t *testing.T) {
	res := &analyze.Result{
		OriginalText: "내일 오후 3시에 프로젝트 회의가 있습니다",
		Dates:        []string{"내일"},
		Times:        []string{"오후 3시", "3시"},
	}
	e := BuildEvent(res, base, "default")

	wantStart := time.Date(2024, 1, 16, 15, 0, 0, 0, time.UTC)
	if !e.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", e.Start, wantStart)
	}
	if !e.End.Equal(wantStart.Add(time.Hour)) {
		t.Errorf("end = %v, want one hour after start", e.End)
	}
	if e.Summary != res.OriginalText {
		t.Errorf("summary = %q", e.Summary)
	}
	if e.Description != res.OriginalText {
		t.Errorf("description = %q", e.Description)
	}
}

func TestBuildEventEmail(t *testing.T) {
	res := &analyze.Result{
		OriginalText: "김철수님에게 업무 메일을 보냈습니다",
		Entities:     analyze.Entities{Persons: []string{"김철수"}},
	}
	e := BuildEvent(res, base, "default")

	if e.Summary != "📧 김철수님에게 업무 메일 발송" {
		t.Errorf("summary = %q", e.Summary)
	}
	if !strings.Contains(e.Description, "원본: "+res.OriginalText) {
		t.Errorf("description missing original text: %q", e.Description)
	}
	if !strings.Contains(e.Description, "수신자: 김철수") {
		t.Errorf("description missing recipient: %q", e.Description)
	}
	if !strings.Contains(e.Description, "📧 이메일 발송 완료") {
		t.Errorf("description missing footer: %q", e.Description)
	}
}

func TestBuildEventEmailNoRecipient(t *testing.T) {
	res := &analyze.Result{OriginalText: "보고서 이메일 발송 완료했습니다"}
	e := BuildEvent(res, base, "default")
	if e.Summary != "📧 업무 메일 발송" {
		t.Errorf("summary = %q", e.Summary)
	}
}

func TestTruncateRunes(t *testing.T) {
	long := strings.Repeat("가", 60)
	got := truncateRunes(long, 50, "...")
	if got != strings.Repeat("가", 50)+"..." {
		t.Errorf("truncateRunes cut at %d runes", len([]rune(got)))
	}
	if truncateRunes("짧은 텍스트", 50, "...") != "짧은 텍스트" {
		t.Error("short text should pass through unchanged")
	}
}
