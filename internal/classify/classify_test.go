package classify

import (
	"testing"

	"github.com/minseo-dev/daylog/internal/analyze"
)

func TestClassify_Cascade(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"meeting keyword", "내일 오후 3시에 회의가 있습니다", CategoryMeeting},
		{"work completion", "오늘 코드 리뷰를 완료했습니다", CategoryWorkLog},
		{"time indicator", "다음주 월요일 오전 10시에 발표가 있습니다", CategorySchedule},
		{"plan keyword only", "워크샵 참가 신청", CategorySchedule},
		{"no keywords", "그냥 쉬었다", CategoryGeneral},
		{"empty", "", CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(Text(tt.text)); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_MeetingBeatsWorkLog(t *testing.T) {
	// 회의 (rule 1) and 완료 (rule 2) both present: rule 1 wins.
	got := Classify(Text("회의 준비를 완료했습니다"))
	if got != CategoryMeeting {
		t.Errorf("Expected meeting to take priority, got %q", got)
	}
}

func TestClassify_WorkLogBeatsSchedule(t *testing.T) {
	// 진행 (rule 2) and 오늘 (rule 3) both present: rule 2 wins.
	got := Classify(Text("오늘 마이그레이션을 진행했다"))
	if got != CategoryWorkLog {
		t.Errorf("Expected work_log to take priority over schedule, got %q", got)
	}
}

func TestClassify_AnalysisInput(t *testing.T) {
	res := &analyze.Result{OriginalText: "미팅 일정 조율"}
	if got := Classify(Analysis(res)); got != CategoryMeeting {
		t.Errorf("Classify(Analysis) = %q, want meeting", got)
	}
}

func TestClassify_NilAnalysis(t *testing.T) {
	if got := Classify(Analysis(nil)); got != CategoryGeneral {
		t.Errorf("Nil analysis should classify as general, got %q", got)
	}
}

func TestRun_FixedConfidence(t *testing.T) {
	r := Run(Text("회의"))
	if r.Category != CategoryMeeting {
		t.Errorf("Category = %q", r.Category)
	}
	if r.Confidence != DefaultConfidence {
		t.Errorf("Confidence = %v, want %v", r.Confidence, DefaultConfidence)
	}
	// Confidence is constant regardless of input.
	if Run(Text("")).Confidence != DefaultConfidence {
		t.Error("Confidence must not vary with input")
	}
}
