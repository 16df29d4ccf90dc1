package nli

import (
	"context"
)

const defaultModel = "deberta-v3-base-zeroshot"

// Request is one premise scored against a set of candidate labels.
// Hypotheses are positionally aligned with Labels; the labeler renders
// them from the run's hypothesis template before submission.
type Request struct {
	Model string `json:"model"`

	// Premise is the document text.
	Premise string `json:"premise"`

	// Labels are the candidate label names.
	Labels []string `json:"labels"`

	// Hypotheses are the rendered NLI hypotheses, one per label.
	Hypotheses []string `json:"hypotheses"`

	// MultiLabel selects independent per-label entailment probabilities.
	// When false the service softmax-normalizes scores across labels.
	MultiLabel bool `json:"multi_label"`

	// Options lists model-specific options.
	Options map[string]any `json:"options,omitempty"`
}

// Result carries the service's scores. The service may return labels in
// any order (typically sorted by score), so consumers must join by label
// name, never by position.
type Result struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// ScoreFor looks up the score for a label by name.
func (r *Result) ScoreFor(label string) (float64, bool) {
	for i, l := range r.Labels {
		if l == label && i < len(r.Scores) {
			return r.Scores[i], true
		}
	}
	return 0, false
}

type Client interface {
	Classify(ctx context.Context, req Request) (*Result, error)
}
