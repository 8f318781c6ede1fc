package ner

import (
	"context"
	"sort"
	"strings"
)

// Lexicon maps known surface forms to entity labels.
type Lexicon struct {
	Persons       []string
	Organizations []string
	Locations     []string
	Dates         []string
	Times         []string
	Misc          []string
}

// LexiconRecognizer matches dictionary entries against the input text.
// Entries are matched longest-first so that "서울지사" wins over "서울".
// The lexicon is read-only after construction.
type LexiconRecognizer struct {
	entries []lexEntry
}

type lexEntry struct {
	term  string
	label string
}

// NewLexiconRecognizer builds a recognizer over the given lexicon.
func NewLexiconRecognizer(lex Lexicon) *LexiconRecognizer {
	var entries []lexEntry
	add := func(terms []string, label string) {
		for _, t := range terms {
			if t = strings.TrimSpace(t); t != "" {
				entries = append(entries, lexEntry{term: t, label: label})
			}
		}
	}
	add(lex.Persons, LabelPerson)
	add(lex.Organizations, LabelOrganization)
	add(lex.Locations, LabelLocation)
	add(lex.Dates, LabelDate)
	add(lex.Times, LabelTime)
	add(lex.Misc, "MISC")

	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].term) > len(entries[j].term)
	})
	return &LexiconRecognizer{entries: entries}
}

// Recognize returns all non-overlapping dictionary matches in text order.
func (r *LexiconRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	claimed := make([]bool, len(text))
	var out []Entity
	for _, e := range r.entries {
		from := 0
		for {
			idx := strings.Index(text[from:], e.term)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(e.term)
			from = end
			if anyClaimed(claimed, start, end) {
				continue
			}
			for i := start; i < end; i++ {
				claimed[i] = true
			}
			out = append(out, Entity{Text: e.term, Label: e.label, Start: start, End: end})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func anyClaimed(claimed []bool, start, end int) bool {
	for i := start; i < end && i < len(claimed); i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}
