package record

import (
	"strings"

	"github.com/minseo-dev/daylog/internal/analyze"
	"github.com/minseo-dev/daylog/internal/store"
)

// BuildNote derives a markdown note from an analysis result. The note
// carries its own category, determined from the raw text independently
// of the classifier.
func BuildNote(res *analyze.Result, userID string) *store.Note {
	return &store.Note{
		Title:    truncateRunes(res.OriginalText, 50, "..."),
		Content:  noteContent(res),
		Category: noteCategory(res.OriginalText),
		UserID:   userID,
	}
}

func noteContent(res *analyze.Result) string {
	var parts []string

	parts = append(parts, "# "+res.OriginalText, "")

	if len(res.Keywords) > 0 {
		parts = append(parts, "## 키워드", strings.Join(res.Keywords, ", "), "")
	}
	if len(res.Entities.Persons) > 0 {
		parts = append(parts, "## 관련 인물", strings.Join(res.Entities.Persons, ", "), "")
	}
	if len(res.Entities.Organizations) > 0 {
		parts = append(parts, "## 관련 조직", strings.Join(res.Entities.Organizations, ", "), "")
	}
	if len(res.Dates) > 0 {
		parts = append(parts, "## 날짜", strings.Join(res.Dates, ", "), "")
	}
	if res.Sentiment != "" {
		parts = append(parts, "## 감정", "감정: "+res.Sentiment, "")
	}

	return strings.Join(parts, "\n")
}

func noteCategory(text string) string {
	lower := strings.ToLower(text)
	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
	switch {
	case containsAny("회의", "미팅", "meeting"):
		return "meeting"
	case containsAny("작업", "업무", "work", "task"):
		return "work_log"
	case containsAny("일정", "스케줄", "schedule"):
		return "schedule"
	}
	return "general"
}
