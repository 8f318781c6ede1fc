package ner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// DefaultLabels is the output head ordering of the bundled KLUE NER model.
// Index position must match the model's id2label mapping exactly.
var DefaultLabels = []string{
	"B-DT", "I-DT",
	"B-LC", "I-LC",
	"B-OG", "I-OG",
	"B-PS", "I-PS",
	"B-QT", "I-QT",
	"B-TI", "I-TI",
	"O",
}

// ONNXConfig holds paths and settings for the ONNX-backed recognizer.
type ONNXConfig struct {
	ModelPath     string   // token-classification model (.onnx)
	TokenizerPath string   // tokenizer.json (WordPiece vocab + normalizer)
	Labels        []string // output label ordering; DefaultLabels if empty
	LibraryPath   string   // optional onnxruntime shared library override
}

// ONNXRecognizer runs a token-classification model through onnxruntime.
//
// The session and tokenizer are loaded once in NewONNXRecognizer and shared
// by all callers. session.Run is serialized with a mutex: the onnxruntime
// binding does not document concurrent Run safety, and serializing here
// keeps the analyzer itself lock-free.
type ONNXRecognizer struct {
	tk      *tokenizer.Tokenizer
	session *ort.DynamicAdvancedSession
	labels  []string

	mu sync.Mutex
}

var ortInitOnce sync.Once
var ortInitErr error

// NewONNXRecognizer loads the tokenizer and model. Call once at startup.
func NewONNXRecognizer(cfg ONNXConfig) (*ONNXRecognizer, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("ner: model path is required")
	}
	if cfg.TokenizerPath == "" {
		return nil, fmt.Errorf("ner: tokenizer path is required")
	}
	labels := cfg.Labels
	if len(labels) == 0 {
		labels = DefaultLabels
	}

	ortInitOnce.Do(func() {
		if cfg.LibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.LibraryPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	if ortInitErr != nil {
		return nil, fmt.Errorf("ner: initializing onnxruntime: %w", ortInitErr)
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("ner: loading tokenizer %s: %w", cfg.TokenizerPath, err)
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"logits"},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("ner: opening model %s: %w", cfg.ModelPath, err)
	}

	return &ONNXRecognizer{tk: tk, session: session, labels: labels}, nil
}

// Close releases the onnxruntime session.
func (r *ONNXRecognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != nil {
		err := r.session.Destroy()
		r.session = nil
		return err
	}
	return nil
}

// Recognize tokenizes the text, runs the model, and decodes BIO tags into
// entity spans. Model failures propagate to the caller unretried.
func (r *ONNXRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	en, err := r.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("ner: encoding input: %w", err)
	}
	n := len(en.Ids)
	if n == 0 {
		return nil, nil
	}

	ids := make([]int64, n)
	mask := make([]int64, n)
	for i, id := range en.Ids {
		ids[i] = int64(id)
		mask[i] = 1
	}

	logits, shape, err := r.run(ids, mask)
	if err != nil {
		return nil, err
	}
	if len(shape) != 3 || int(shape[1]) != n {
		return nil, fmt.Errorf("ner: unexpected logits shape %v for %d tokens", shape, n)
	}
	numLabels := int(shape[2])
	if numLabels > len(r.labels) {
		numLabels = len(r.labels)
	}

	tags := make([]string, n)
	for i := 0; i < n; i++ {
		best, bestVal := 0, logits[i*int(shape[2])]
		for j := 1; j < numLabels; j++ {
			if v := logits[i*int(shape[2])+j]; v > bestVal {
				best, bestVal = j, v
			}
		}
		tags[i] = r.labels[best]
	}

	return decodeBIO(text, en, tags), nil
}

// run executes one forward pass. Serialized; tensors are created and
// destroyed per call.
func (r *ONNXRecognizer) run(ids, mask []int64) ([]float32, []int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil, nil, fmt.Errorf("ner: recognizer is closed")
	}

	n := int64(len(ids))
	idTensor, err := ort.NewTensor(ort.NewShape(1, n), ids)
	if err != nil {
		return nil, nil, fmt.Errorf("ner: creating input tensor: %w", err)
	}
	defer idTensor.Destroy()
	maskTensor, err := ort.NewTensor(ort.NewShape(1, n), mask)
	if err != nil {
		return nil, nil, fmt.Errorf("ner: creating mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := r.session.Run([]ort.Value{idTensor, maskTensor}, outputs); err != nil {
		return nil, nil, fmt.Errorf("ner: model inference: %w", err)
	}
	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, nil, fmt.Errorf("ner: unexpected output tensor type %T", outputs[0])
	}
	defer out.Destroy()

	shape := out.GetShape()
	data := out.GetData()
	logits := make([]float32, len(data))
	copy(logits, data)
	return logits, shape, nil
}

// decodeBIO folds per-token BIO tags into entity spans using the encoding's
// character offsets. Special tokens ([CLS], [SEP], padding) are skipped.
func decodeBIO(text string, en *tokenizer.Encoding, tags []string) []Entity {
	var out []Entity
	var cur *Entity

	flush := func() {
		if cur != nil && cur.End > cur.Start {
			cur.Text = text[cur.Start:cur.End]
			out = append(out, *cur)
		}
		cur = nil
	}

	for i, tag := range tags {
		if i < len(en.SpecialTokenMask) && en.SpecialTokenMask[i] == 1 {
			flush()
			continue
		}
		if i >= len(en.Offsets) {
			break
		}
		start, end := en.Offsets[i][0], en.Offsets[i][1]
		if end <= start {
			continue
		}

		switch {
		case tag == "O":
			flush()
		case strings.HasPrefix(tag, "B-"):
			flush()
			cur = &Entity{Label: tag[2:], Start: start, End: end}
		case strings.HasPrefix(tag, "I-"):
			if cur != nil && cur.Label == tag[2:] {
				cur.End = end
			} else {
				// Dangling I- tag: treat as a new span.
				flush()
				cur = &Entity{Label: tag[2:], Start: start, End: end}
			}
		default:
			flush()
		}
	}
	flush()
	return out
}
