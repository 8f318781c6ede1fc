// Package datetime parses and formats the Korean date/time expressions the
// analyzer extracts. Parsing is total: unparseable input falls back to a
// default instead of erroring, because extraction upstream already filtered
// candidates and a bad residue should not fail the request.
package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// relative date offsets in days, checked by substring containment.
var relativeDays = []struct {
	keyword string
	days    int
}{
	{"다음주", 7},
	{"내일", 1},
	{"모레", 2},
	{"오늘", 0},
	{"다음달", 30},
}

// ParseDate converts a date expression to a time. Relative keywords are
// offsets from now; absolute forms are YYYY년 M월 D일, M월 D일 (current
// year), M/D, and ISO YYYY-MM-DD. Anything else returns now.
func ParseDate(s string, now time.Time) time.Time {
	for _, rel := range relativeDays {
		if strings.Contains(s, rel.keyword) {
			return now.AddDate(0, 0, rel.days)
		}
	}

	if strings.Contains(s, "년") && strings.Contains(s, "월") && strings.Contains(s, "일") {
		if t, err := parseFullKoreanDate(s, now.Location()); err == nil {
			return t
		}
		return now
	}

	if strings.Contains(s, "월") && strings.Contains(s, "일") {
		if month, day, ok := parseMonthDay(s); ok {
			return time.Date(now.Year(), time.Month(month), day,
				now.Hour(), now.Minute(), now.Second(), 0, now.Location())
		}
		return now
	}

	if strings.Contains(s, "/") {
		parts := strings.SplitN(s, "/", 2)
		month, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		day, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 == nil && err2 == nil && month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(now.Year(), time.Month(month), day,
				now.Hour(), now.Minute(), now.Second(), 0, now.Location())
		}
		return now
	}

	if t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location()); err == nil {
		return t
	}
	return now
}

func parseFullKoreanDate(s string, loc *time.Location) (time.Time, error) {
	clean := strings.NewReplacer("년", " ", "월", " ", "일", " ").Replace(s)
	fields := strings.Fields(clean)
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("parsing %q: want 3 fields, got %d", s, len(fields))
	}
	year, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, err
	}
	month, err := strconv.Atoi(fields[1])
	if err != nil {
		return time.Time{}, err
	}
	day, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, err
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("parsing %q: out of range", s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

func parseMonthDay(s string) (month, day int, ok bool) {
	clean := strings.NewReplacer("월", " ", "일", " ").Replace(s)
	fields := strings.Fields(clean)
	if len(fields) != 2 {
		return 0, 0, false
	}
	month, err1 := strconv.Atoi(fields[0])
	day, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, false
	}
	return month, day, true
}

// ParseTime converts a time expression to now's date with the parsed clock
// time. 오전/오후 select the half of the day. Forms: HH:MM, N시 M분, N시.
// No parseable time yields 09:00.
func ParseTime(s string, now time.Time) time.Time {
	isAfternoon := strings.Contains(s, "오후")
	isMorning := strings.Contains(s, "오전")
	clean := strings.TrimSpace(strings.NewReplacer("오후", "", "오전", "").Replace(s))

	at := func(hour, minute int) time.Time {
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			return time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
		}
		return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	}

	if strings.Contains(clean, ":") {
		parts := strings.SplitN(clean, ":", 2)
		hour, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		minute, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return at(9, 0)
		}
		return at(adjustMeridiem(hour, isMorning, isAfternoon), minute)
	}

	if strings.Contains(clean, "시") && strings.Contains(clean, "분") {
		fields := strings.Fields(strings.NewReplacer("시", " ", "분", " ").Replace(clean))
		if len(fields) == 0 {
			return at(9, 0)
		}
		hour, err := strconv.Atoi(fields[0])
		if err != nil {
			return at(9, 0)
		}
		minute := 0
		if len(fields) > 1 {
			if m, err := strconv.Atoi(fields[1]); err == nil {
				minute = m
			}
		}
		return at(adjustMeridiem(hour, isMorning, isAfternoon), minute)
	}

	if strings.Contains(clean, "시") {
		hour, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(clean, "시", "")))
		if err != nil {
			return at(9, 0)
		}
		return at(adjustMeridiem(hour, isMorning, isAfternoon), 0)
	}

	return at(9, 0)
}

// adjustMeridiem applies 오전/오후 to a 12-hour clock value.
func adjustMeridiem(hour int, isMorning, isAfternoon bool) int {
	if isAfternoon && hour < 12 {
		return hour + 12
	}
	if isMorning && hour == 12 {
		return 0
	}
	return hour
}

// FormatDate renders a time as "2024년 1월 15일".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
}

// FormatTime renders a time as "14:30".
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// IsRelativeDate reports whether the expression is relative to today.
func IsRelativeDate(s string) bool {
	for _, rel := range relativeDays {
		if strings.Contains(s, rel.keyword) {
			return true
		}
	}
	return false
}

// DateRange resolves a start/end expression pair. An empty end defaults to
// one week after the start.
func DateRange(start, end string, now time.Time) (time.Time, time.Time) {
	startAt := ParseDate(start, now)
	if end == "" {
		return startAt, startAt.AddDate(0, 0, 7)
	}
	return startAt, ParseDate(end, now)
}
