package analyze

import (
	"regexp"
	"strings"
)

// taskPatterns are the fixed action-item markers. For every pattern found
// anywhere in the text, each period-delimited sentence matching that same
// pattern is appended. A sentence matching several patterns is appended
// once per pattern; duplicates are intentional.
var taskPatterns = []*regexp.Regexp{
	regexp.MustCompile(`해야\s*할\s*일`),
	regexp.MustCompile(`완료\s*해야\s*함`),
	regexp.MustCompile(`진행\s*중`),
	regexp.MustCompile(`검토\s*필요`),
	regexp.MustCompile(`작업\s*예정`),
}

// extractTasks returns action-item sentence fragments. Never nil.
func extractTasks(text string) []string {
	tasks := []string{}
	for _, re := range taskPatterns {
		if !re.MatchString(text) {
			continue
		}
		for _, sentence := range strings.Split(text, ".") {
			if re.MatchString(sentence) {
				tasks = append(tasks, strings.TrimSpace(sentence))
			}
		}
	}
	return tasks
}
