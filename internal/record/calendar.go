// Package record derives persistable records from analysis results.
//
// Each builder is pure: it takes an analysis result and returns the
// record to store. Persistence happens in the engine.
package record

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/minseo-dev/daylog/internal/analyze"
	"github.com/minseo-dev/daylog/internal/store"
)

// emailKeywords mark an input as describing a sent email rather than
// an upcoming appointment.
var emailKeywords = []string{"메일", "이메일", "email", "mail", "보냈", "발송", "전송"}

var (
	pmHourRE   = regexp.MustCompile(`오후\s*(\d+)시`)
	amHourRE   = regexp.MustCompile(`오전\s*(\d+)시`)
	bareHourRE = regexp.MustCompile(`(\d+)시`)
	minuteRE   = regexp.MustCompile(`(\d+)분`)
)

// BuildEvent derives a calendar event from an analysis result. The
// event starts at the first extracted date and time, defaulting to now,
// and runs for one hour.
func BuildEvent(res *analyze.Result, now time.Time, userID string) *store.CalendarEvent {
	summary := truncateRunes(res.OriginalText, 128, "")
	description := res.OriginalText

	if isEmailRelated(res.OriginalText) {
		summary = emailSummary(res)
		description = emailDescription(res)
	}

	day := parseEventDate(res.Dates, now)
	hour, minute := parseEventTime(res.Times, day)
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())

	return &store.CalendarEvent{
		Summary:     summary,
		Description: description,
		Start:       start,
		End:         start.Add(time.Hour),
		UserID:      userID,
	}
}

func isEmailRelated(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range emailKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func emailSummary(res *analyze.Result) string {
	if len(res.Entities.Persons) > 0 {
		return fmt.Sprintf("📧 %s님에게 업무 메일 발송", res.Entities.Persons[0])
	}
	return "📧 업무 메일 발송"
}

func emailDescription(res *analyze.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "원본: %s\n\n", res.OriginalText)
	if len(res.Entities.Persons) > 0 {
		fmt.Fprintf(&b, "수신자: %s\n", strings.Join(res.Entities.Persons, ", "))
	}
	if len(res.Times) > 0 {
		fmt.Fprintf(&b, "발송 시간: %s\n", strings.Join(res.Times, ", "))
	}
	if len(res.Dates) > 0 {
		fmt.Fprintf(&b, "발송 날짜: %s\n", strings.Join(res.Dates, ", "))
	}
	b.WriteString("\n📧 이메일 발송 완료")
	return b.String()
}

// parseEventDate resolves the first extracted date expression relative
// to now. 다음주 lands on the following Monday.
func parseEventDate(dates []string, now time.Time) time.Time {
	if len(dates) == 0 {
		return now
	}
	s := strings.ToLower(dates[0])
	switch {
	case strings.Contains(s, "오늘"):
		return now
	case strings.Contains(s, "내일"):
		return now.AddDate(0, 0, 1)
	case strings.Contains(s, "모레"):
		return now.AddDate(0, 0, 2)
	case strings.Contains(s, "다음주"):
		// days until next Monday, counting Monday as day 0
		weekday := (int(now.Weekday()) + 6) % 7
		daysAhead := 7 - weekday
		if daysAhead <= 0 {
			daysAhead += 7
		}
		return now.AddDate(0, 0, daysAhead)
	}
	return now
}

// parseEventTime resolves the first extracted time expression. A bare
// hour below 6 with no meridiem marker is taken as afternoon.
func parseEventTime(times []string, target time.Time) (hour, minute int) {
	if len(times) == 0 {
		return target.Hour(), target.Minute()
	}
	s := times[0]
	hour = target.Hour()
	minute = 0

	if m := pmHourRE.FindStringSubmatch(s); m != nil {
		hour, _ = strconv.Atoi(m[1])
		if hour != 12 {
			hour += 12
		}
	} else if m := amHourRE.FindStringSubmatch(s); m != nil {
		hour, _ = strconv.Atoi(m[1])
		if hour == 12 {
			hour = 0
		}
	} else if m := bareHourRE.FindStringSubmatch(s); m != nil {
		hour, _ = strconv.Atoi(m[1])
		if hour < 6 {
			hour += 12
		}
	}

	if m := minuteRE.FindStringSubmatch(s); m != nil {
		minute, _ = strconv.Atoi(m[1])
	}
	return hour, minute
}

// truncateRunes shortens s to at most n runes, appending suffix when
// truncation happened.
func truncateRunes(s string, n int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + suffix
}
