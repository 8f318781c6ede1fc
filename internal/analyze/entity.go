package analyze

import (
	"regexp"
	"strings"

	"github.com/minseo-dev/daylog/internal/ner"
)

// Entities buckets recognized names by kind. Strings are unique within a
// bucket, and reclassification guarantees no honorific-bearing item stays
// in Misc.
type Entities struct {
	Persons       []string `json:"persons"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
	Misc          []string `json:"misc"`
}

// honorificPatterns capture a 2-4 syllable Korean name followed by an
// honorific or title suffix. These catch persons the base recognizer missed.
var honorificPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([가-힣]{2,4})\s*님`),
	regexp.MustCompile(`([가-힣]{2,4})\s*씨`),
	regexp.MustCompile(`([가-힣]{2,4})\s*대표`),
	regexp.MustCompile(`([가-힣]{2,4})\s*팀장`),
	regexp.MustCompile(`([가-힣]{2,4})\s*부장`),
	regexp.MustCompile(`([가-힣]{2,4})\s*과장`),
	regexp.MustCompile(`([가-힣]{2,4})\s*사원`),
}

// honorificSuffixes drive the misc→persons reclassification pass.
var honorificSuffixes = []string{"님", "씨", "대표", "팀장", "부장", "과장", "사원"}

var koreanNameRE = regexp.MustCompile(`[가-힣]{2,4}`)

// extractEntities buckets recognizer output, supplements persons via
// honorific patterns over the raw text, and reclassifies misc items that
// carry an honorific suffix.
func extractEntities(text string, recognized []ner.Entity) Entities {
	e := Entities{
		Persons:       []string{},
		Organizations: []string{},
		Locations:     []string{},
		Misc:          []string{},
	}

	for _, ent := range recognized {
		switch ent.Label {
		case ner.LabelPerson:
			e.Persons = appendUnique(e.Persons, ent.Text)
		case ner.LabelOrganization:
			e.Organizations = appendUnique(e.Organizations, ent.Text)
		case ner.LabelLocation:
			e.Locations = appendUnique(e.Locations, ent.Text)
		default:
			e.Misc = appendUnique(e.Misc, ent.Text)
		}
	}

	for _, re := range honorificPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			e.Persons = appendUnique(e.Persons, m[1])
		}
	}

	e.reclassifyMisc()
	return e
}

// reclassifyMisc moves honorific-bearing misc items into persons, keeping
// only the name substring. The original item is dropped from misc.
func (e *Entities) reclassifyMisc() {
	kept := e.Misc[:0]
	for _, item := range e.Misc {
		if !containsHonorific(item) {
			kept = append(kept, item)
			continue
		}
		if name := koreanNameRE.FindString(item); name != "" {
			e.Persons = appendUnique(e.Persons, name)
		} else {
			kept = append(kept, item)
		}
	}
	e.Misc = kept
}

func containsHonorific(s string) bool {
	for _, suffix := range honorificSuffixes {
		if strings.Contains(s, suffix) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}
