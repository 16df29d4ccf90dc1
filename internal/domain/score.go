package domain

import (
	"math"

	"github.com/google/uuid"
	"github.com/zeroshot-labs/label-hunter/internal/apperr"
)

const ScoreDecimalPlaces = 4

// ScoreRecord holds the per-label entailment scores for one document.
// Labels keeps the run's label ordering so output columns stay stable;
// Scores are independent per label and deliberately do not sum to 1.
type ScoreRecord struct {
	DocumentIndex int                `json:"documentIndex"`
	Labels        []string           `json:"labels"`
	Scores        map[string]float64 `json:"scores"`
}

// Validate checks the record invariant: every label present, every
// score a real number in [0, 1].
func (r ScoreRecord) Validate() error {
	for _, label := range r.Labels {
		score, ok := r.Scores[label]
		if !ok {
			return apperr.NewValidation("score record is missing label " + label)
		}
		if math.IsNaN(score) || score < 0 || score > 1 {
			return apperr.NewValidation("score for label " + label + " is outside [0, 1]")
		}
	}
	return nil
}

// LabelAssignment is the hard-label view of a ScoreRecord. It is always
// derived, never stored on its own.
type LabelAssignment struct {
	DocumentIndex int             `json:"documentIndex"`
	Threshold     float64         `json:"threshold"`
	Relevant      map[string]bool `json:"relevant"`
}

// Assign derives a LabelAssignment from a score record. A label is
// relevant iff its score is strictly greater than the threshold.
func Assign(record ScoreRecord, threshold float64) (LabelAssignment, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return LabelAssignment{}, apperr.NewInvalidThreshold(threshold)
	}

	relevant := make(map[string]bool, len(record.Labels))
	for _, label := range record.Labels {
		relevant[label] = record.Scores[label] > threshold
	}

	return LabelAssignment{
		DocumentIndex: record.DocumentIndex,
		Threshold:     threshold,
		Relevant:      relevant,
	}, nil
}

// LabeledDocument is the persisted unit of a labeling run: the document
// together with its scores and, when a threshold was set, the derived
// assignment.
type LabeledDocument struct {
	RunID      uuid.UUID        `json:"runId"`
	Document   Document         `json:"document"`
	Record     ScoreRecord      `json:"record"`
	Assignment *LabelAssignment `json:"assignment,omitempty"`
}
