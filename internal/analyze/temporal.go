package analyze

import (
	"regexp"
	"strings"
)

// Date extraction runs in two passes. Compound patterns (relative week +
// weekday) claim their spans first; standalone patterns are rejected when
// they overlap a claimed span. A final filter drops any date that is a
// strict substring of another extracted date.
//
// Time extraction deliberately has neither the overlap nor the substring
// filter: simple matches are appended even when a compound match already
// covers them. Known asymmetry, kept as-is.

var compoundDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`다음주\s*월요일`),
	regexp.MustCompile(`이번주\s*월요일`),
	regexp.MustCompile(`다음주\s*화요일`),
	regexp.MustCompile(`다음주\s*수요일`),
	regexp.MustCompile(`다음주\s*목요일`),
	regexp.MustCompile(`다음주\s*금요일`),
	regexp.MustCompile(`다음주\s*토요일`),
	regexp.MustCompile(`다음주\s*일요일`),
}

var standaloneDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}년\s*\d{1,2}월\s*\d{1,2}일`),
	regexp.MustCompile(`\d{1,2}월\s*\d{1,2}일`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}`),
	regexp.MustCompile(`오늘|내일|모레|다음주|다음달`),
}

var compoundTimePatterns = []*regexp.Regexp{
	regexp.MustCompile(`오후\s*\d{1,2}시`),
	regexp.MustCompile(`오전\s*\d{1,2}시`),
	regexp.MustCompile(`오후\s*\d{1,2}:\d{2}`),
	regexp.MustCompile(`오전\s*\d{1,2}:\d{2}`),
}

var simpleTimePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}:\d{2}`),
	regexp.MustCompile(`\d{1,2}시\s*\d{1,2}분`),
	regexp.MustCompile(`\d{1,2}시`),
}

// periodMarkers are bare day-period tokens appended only when no collected
// time already contains them.
var periodMarkers = []string{"오전", "오후"}

type span struct {
	start, end int // half-open byte range
}

// overlaps reports half-open interval intersection with a claimed span.
func (s span) overlaps(o span) bool {
	return (s.start <= o.start && o.start < s.end) || (s.start < o.end && o.end <= s.end)
}

// extractDates returns date expressions in first-found order. Never nil.
func extractDates(text string) []string {
	dates := []string{}
	var claimed []span

	for _, re := range compoundDatePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			dates = append(dates, text[loc[0]:loc[1]])
			claimed = append(claimed, span{loc[0], loc[1]})
		}
	}

	for _, re := range standaloneDatePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			s := span{loc[0], loc[1]}
			taken := false
			for _, c := range claimed {
				if c.overlaps(s) {
					taken = true
					break
				}
			}
			if !taken {
				dates = append(dates, text[loc[0]:loc[1]])
			}
		}
	}

	return dropContainedDates(dates)
}

// dropContainedDates removes dates that are strict substrings of another
// extracted date. Equal duplicates survive.
func dropContainedDates(dates []string) []string {
	filtered := []string{}
	for _, d := range dates {
		contained := false
		for _, other := range dates {
			if d != other && strings.Contains(other, d) {
				contained = true
				break
			}
		}
		if !contained {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// extractTimes returns time expressions in first-found order. Never nil.
func extractTimes(text string) []string {
	times := []string{}

	for _, re := range compoundTimePatterns {
		times = append(times, re.FindAllString(text, -1)...)
	}
	for _, re := range simpleTimePatterns {
		times = append(times, re.FindAllString(text, -1)...)
	}

	for _, kw := range periodMarkers {
		if !strings.Contains(text, kw) {
			continue
		}
		subsumed := false
		for _, t := range times {
			if strings.Contains(t, kw) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			times = append(times, kw)
		}
	}

	return times
}
