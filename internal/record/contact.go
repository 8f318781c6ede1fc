package record

import (
	"regexp"

	"github.com/minseo-dev/daylog/internal/store"
)

var emailRE = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

var phoneREs = []*regexp.Regexp{
	regexp.MustCompile(`\d{3}-\d{3,4}-\d{4}`),
	regexp.MustCompile(`\d{2,3}-\d{3,4}-\d{4}`),
	regexp.MustCompile(`\d{10,11}`),
}

var companyREs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([가-힣A-Za-z0-9]+회사)`),
	regexp.MustCompile(`(?i)([가-힣A-Za-z0-9]+기업)`),
	regexp.MustCompile(`(?i)([가-힣A-Za-z0-9]+corporation)`),
	regexp.MustCompile(`(?i)([가-힣A-Za-z0-9]+inc)`),
	regexp.MustCompile(`(?i)([가-힣A-Za-z0-9]+ltd)`),
	regexp.MustCompile(`(?i)([가-힣A-Za-z0-9]+co)`),
}

var positionREs = []*regexp.Regexp{
	regexp.MustCompile(`([가-힣]+대표)`),
	regexp.MustCompile(`([가-힣]+팀장)`),
	regexp.MustCompile(`([가-힣]+부장)`),
	regexp.MustCompile(`([가-힣]+과장)`),
	regexp.MustCompile(`([가-힣]+사원)`),
	regexp.MustCompile(`([가-힣]+매니저)`),
	regexp.MustCompile(`(?i)(director)`),
	regexp.MustCompile(`(?i)(manager)`),
}

// ExtractContact pulls contact details for name out of the raw text.
// Emails, phone numbers, company and position come from regex matches
// over the whole input.
func ExtractContact(text, name, userID string) *store.Contact {
	c := &store.Contact{
		Name:   name,
		Emails: emailRE.FindAllString(text, -1),
		Phones: dedupe(findAll(phoneREs, text)),
		Notes:  "자동 추출: " + text,
		UserID: userID,
	}

	for _, re := range companyREs {
		if m := re.FindStringSubmatch(text); m != nil {
			c.Company = m[1]
			break
		}
	}
	for _, re := range positionREs {
		if m := re.FindStringSubmatch(text); m != nil {
			c.Position = m[1]
			break
		}
	}
	return c
}

func findAll(res []*regexp.Regexp, text string) []string {
	var out []string
	for _, re := range res {
		out = append(out, re.FindAllString(text, -1)...)
	}
	return out
}

func dedupe(vals []string) []string {
	seen := make(map[string]bool, len(vals))
	var out []string
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
