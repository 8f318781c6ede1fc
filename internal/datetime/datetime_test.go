package datetime

import (
	"testing"
	"time"
)

var base = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func TestParseDate_Relative(t *testing.T) {
	tests := []struct {
		expr string
		want time.Time
	}{
		{"오늘", base},
		{"내일", base.AddDate(0, 0, 1)},
		{"모레", base.AddDate(0, 0, 2)},
		{"다음주", base.AddDate(0, 0, 7)},
		{"다음주 월요일", base.AddDate(0, 0, 7)},
		{"다음달", base.AddDate(0, 0, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := ParseDate(tt.expr, base); !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseDate_FullKorean(t *testing.T) {
	got := ParseDate("2024년 3월 1일", base)
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}
}

func TestParseDate_MonthDay(t *testing.T) {
	got := ParseDate("3월 1일", base)
	if got.Month() != time.March || got.Day() != 1 || got.Year() != 2024 {
		t.Errorf("ParseDate(3월 1일) = %v", got)
	}
}

func TestParseDate_Slash(t *testing.T) {
	got := ParseDate("3/15", base)
	if got.Month() != time.March || got.Day() != 15 {
		t.Errorf("ParseDate(3/15) = %v", got)
	}
}

func TestParseDate_ISO(t *testing.T) {
	got := ParseDate("2024-06-01", base)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate(2024-06-01) = %v, want %v", got, want)
	}
}

func TestParseDate_GarbageFallsBackToNow(t *testing.T) {
	for _, expr := range []string{"", "없는 날짜", "13월 40일", "99/99"} {
		if got := ParseDate(expr, base); !got.Equal(base) {
			t.Errorf("ParseDate(%q) = %v, want now fallback", expr, got)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		expr         string
		hour, minute int
	}{
		{"오후 3시", 15, 0},
		{"오전 9시", 9, 0},
		{"오후 12시", 12, 0},
		{"오전 12시", 0, 0},
		{"14:30", 14, 30},
		{"오후 2:15", 14, 15},
		{"3시 30분", 3, 30},
		{"오후 3시 30분", 15, 30},
		{"10시", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got := ParseTime(tt.expr, base)
			if got.Hour() != tt.hour || got.Minute() != tt.minute {
				t.Errorf("ParseTime(%q) = %02d:%02d, want %02d:%02d",
					tt.expr, got.Hour(), got.Minute(), tt.hour, tt.minute)
			}
		})
	}
}

func TestParseTime_DefaultNineAM(t *testing.T) {
	for _, expr := range []string{"", "아무때나", "시분"} {
		got := ParseTime(expr, base)
		if got.Hour() != 9 || got.Minute() != 0 {
			t.Errorf("ParseTime(%q) = %02d:%02d, want 09:00", expr, got.Hour(), got.Minute())
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(base); got != "2024년 1월 15일" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(base); got != "10:30" {
		t.Errorf("FormatTime = %q", got)
	}
}

func TestIsRelativeDate(t *testing.T) {
	if !IsRelativeDate("내일") || !IsRelativeDate("다음주 화요일") {
		t.Error("relative expressions not detected")
	}
	if IsRelativeDate("2024년 1월 15일") {
		t.Error("absolute date flagged as relative")
	}
}

func TestDateRange_DefaultEnd(t *testing.T) {
	start, end := DateRange("오늘", "", base)
	if !start.Equal(base) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(base.AddDate(0, 0, 7)) {
		t.Errorf("end = %v, want start+7d", end)
	}
}

func TestDateRange_ExplicitEnd(t *testing.T) {
	start, end := DateRange("오늘", "내일", base)
	if !start.Equal(base) || !end.Equal(base.AddDate(0, 0, 1)) {
		t.Errorf("range = %v..%v", start, end)
	}
}
