package record

import (
	"strings"
	"time"

	"github.com/minseo-dev/daylog/internal/analyze"
	"github.com/minseo-dev/daylog/internal/store"
)

var (
	urgentKeywords = []string{"긴급", "urgent", "즉시", "asap"}
	highKeywords   = []string{"중요", "important", "높음", "high"}
)

// BuildTask derives a project task from an analysis result. Tasks get a
// default one week window starting now and begin in the pending state.
func BuildTask(res *analyze.Result, now time.Time, userID string) *store.Task {
	return &store.Task{
		Title:       truncateRunes(res.OriginalText, 50, "..."),
		Description: res.OriginalText,
		StartDate:   now,
		EndDate:     now.AddDate(0, 0, 7),
		Status:      store.StatusPending,
		Priority:    determinePriority(res.OriginalText),
		UserID:      userID,
	}
}

// determinePriority maps urgency wording to a priority level. Urgency
// keywords win over importance keywords.
func determinePriority(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range urgentKeywords {
		if strings.Contains(lower, kw) {
			return store.PriorityHigh
		}
	}
	for _, kw := range highKeywords {
		if strings.Contains(lower, kw) {
			return store.PriorityMedium
		}
	}
	return store.PriorityLow
}
