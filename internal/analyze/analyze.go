// Package analyze implements the text-understanding pipeline for Korean
// work-input text.
//
// A single Analyze call extracts temporal expressions, named entities,
// action-item phrases, keywords, and sentiment, and assembles them into one
// Result. The extractors are pure functions over the input plus read-only
// pattern tables; the only stateful collaborator is the injected NER
// recognizer, which is loaded once and shared by all calls.
package analyze

import (
	"context"
	"fmt"
	"time"

	"github.com/minseo-dev/daylog/internal/ner"
)

// Result is the structured analysis of one input text. It is assembled
// fresh per call and not mutated afterwards, except for Category and
// Confidence, which the classification step fills in.
type Result struct {
	OriginalText string    `json:"original_text"`
	Dates        []string  `json:"dates"`
	Times        []string  `json:"times"`
	Entities     Entities  `json:"entities"`
	Tasks        []string  `json:"tasks"`
	Keywords     []string  `json:"keywords"`
	Sentiment    string    `json:"sentiment"`
	ProcessedAt  time.Time `json:"processed_at"`

	// Filled in by the classifier, not the analyzer.
	Category   string  `json:"category,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Summary is a lightweight overview of a text without the full extraction
// payload.
type Summary struct {
	TextLength   int  `json:"text_length"`
	HasDates     bool `json:"has_dates"`
	HasTimes     bool `json:"has_times"`
	EntityCount  int  `json:"entity_count"`
	KeywordCount int  `json:"keyword_count"`
}

// Analyzer runs the extraction pipeline. Safe for concurrent use.
type Analyzer struct {
	recognizer ner.Recognizer
}

// New creates an Analyzer around the given recognizer. The recognizer is
// expected to be process-wide and immutable; it is never reloaded per call.
func New(recognizer ner.Recognizer) *Analyzer {
	return &Analyzer{recognizer: recognizer}
}

// Analyze extracts all fields from text. Empty or malformed text never
// errors; every extractor yields its empty form. A recognizer failure is
// fatal for the call: no partial Result is returned.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*Result, error) {
	recognized, err := a.recognizer.Recognize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("analyzing text: %w", err)
	}

	return &Result{
		OriginalText: text,
		Dates:        extractDates(text),
		Times:        extractTimes(text),
		Entities:     extractEntities(text, recognized),
		Tasks:        extractTasks(text),
		Keywords:     extractKeywords(text),
		Sentiment:    analyzeSentiment(text),
		ProcessedAt:  time.Now(),
	}, nil
}

// Summarize reports extraction counts without building a full Result.
func (a *Analyzer) Summarize(ctx context.Context, text string) (*Summary, error) {
	recognized, err := a.recognizer.Recognize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("summarizing text: %w", err)
	}
	return &Summary{
		TextLength:   len([]rune(text)),
		HasDates:     len(extractDates(text)) > 0,
		HasTimes:     len(extractTimes(text)) > 0,
		EntityCount:  len(recognized),
		KeywordCount: len(extractKeywords(text)),
	}, nil
}
