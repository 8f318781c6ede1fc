// Package ner provides named-entity recognition for Korean work-input text.
//
// Two recognizers are available:
//   - ONNXRecognizer: a token-classification model (KLUE-style BIO tags)
//     executed through onnxruntime, loaded once at process startup.
//   - LexiconRecognizer: a dictionary-backed recognizer for deployments
//     without a model file, and for deterministic tests.
//
// Both are safe for concurrent use. A recognizer is injected into the
// analyzer at construction time and never reloaded per call.
package ner

import "context"

// Entity label values follow the KLUE NER tag set.
const (
	LabelPerson       = "PS"
	LabelOrganization = "OG"
	LabelLocation     = "LC"
	LabelDate         = "DT"
	LabelTime         = "TI"
	LabelQuantity     = "QT"
)

// Entity is a single recognized span of the input text.
type Entity struct {
	Text  string
	Label string
	Start int // byte offset into the input
	End   int
}

// Recognizer extracts named entities from raw text.
//
// Implementations must be safe for concurrent calls and must not mutate
// shared state per call. A failure (degenerate input crashing the model)
// is fatal for the request: callers get an error and no partial result.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}
