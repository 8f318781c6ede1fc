// Package classify assigns a category to work-input text.
//
// Classification is an ordered rule cascade over the raw text: an explicit
// list of (keyword set, category) pairs evaluated top-down, first match
// wins. The ordering is load-bearing (진행 appears in more than one set),
// so rules live in a single slice rather than a map.
package classify

import (
	"strings"

	"github.com/minseo-dev/daylog/internal/analyze"
)

// Categories. Classification is total: every input maps to exactly one.
const (
	CategoryMeeting  = "meeting"
	CategoryWorkLog  = "work_log"
	CategorySchedule = "schedule"
	CategoryGeneral  = "general"
)

// DefaultConfidence is the fixed confidence attached to every
// classification. There is no dynamic confidence model.
const DefaultConfidence = 0.8

// rule pairs a keyword set with the category it selects.
type rule struct {
	keywords []string
	category string
}

// rules is the cascade, in priority order.
var rules = []rule{
	{[]string{"회의", "미팅", "브리핑", "토론", "논의"}, CategoryMeeting},
	{[]string{"완료", "진행", "작업", "업무", "프로젝트", "개발", "구현", "테스트", "분석", "마쳤", "끝냈"}, CategoryWorkLog},
	{[]string{"시", "분", "오전", "오후", "오늘", "내일", "모레", "다음주", "이번주"}, CategorySchedule},
	{[]string{"일정", "예약", "스케줄", "계획", "발표", "워크샵"}, CategorySchedule},
}

// Input is the classifier's tagged input: either raw text or an analysis
// result whose original text is read. Resolved here at the boundary, not
// inside the cascade.
type Input struct {
	text string
}

// Text wraps a raw string for classification.
func Text(s string) Input {
	return Input{text: s}
}

// Analysis wraps an analysis result; a nil result classifies as empty text.
func Analysis(res *analyze.Result) Input {
	if res == nil {
		return Input{}
	}
	return Input{text: res.OriginalText}
}

// Classify runs the cascade and returns the category. It never fails:
// empty or missing text falls through every rule to general.
func Classify(in Input) string {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if in.text != "" && strings.Contains(in.text, kw) {
				return r.category
			}
		}
	}
	return CategoryGeneral
}

// Result bundles the category with the fixed confidence.
type Result struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Run classifies and attaches the fixed confidence.
func Run(in Input) Result {
	return Result{Category: Classify(in), Confidence: DefaultConfidence}
}
