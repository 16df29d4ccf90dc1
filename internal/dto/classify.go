package dto

import (
	"github.com/zeroshot-labs/label-hunter/internal/domain"
	"github.com/zeroshot-labs/label-hunter/internal/labeler"
	"github.com/zeroshot-labs/label-hunter/pkg/utils"
)

type ClassifyRequest struct {
	Documents          []string `json:"documents"`
	Labels             []string `json:"labels"`
	HypothesisTemplate string   `json:"hypothesis_template,omitempty"`
	Threshold          *float64 `json:"threshold,omitempty"`

	// SkipFailures reports failing documents instead of failing the
	// whole request.
	SkipFailures bool `json:"skip_failures,omitempty"`
}

type ScoreRecord struct {
	DocumentIndex int                `json:"document_index"`
	Scores        map[string]float64 `json:"scores"`
	Relevant      map[string]bool    `json:"relevant,omitempty"`
}

type SkippedDocument struct {
	DocumentIndex int    `json:"document_index"`
	Reason        string `json:"reason"`
}

type ClassifyResponse struct {
	Labels  []string          `json:"labels"`
	Records []ScoreRecord     `json:"records"`
	Skipped []SkippedDocument `json:"skipped,omitempty"`
}

type AssignRequest struct {
	Labels    []string      `json:"labels"`
	Records   []ScoreRecord `json:"records"`
	Threshold float64       `json:"threshold"`
}

type Assignment struct {
	DocumentIndex int             `json:"document_index"`
	Relevant      map[string]bool `json:"relevant"`
}

type AssignResponse struct {
	Threshold   float64      `json:"threshold"`
	Assignments []Assignment `json:"assignments"`
}

// MapClassifyResponse converts a scoring result to its transport shape,
// rounding scores for stable output columns.
func MapClassifyResponse(labels []string, result *labeler.BatchResult, assignments []domain.LabelAssignment) ClassifyResponse {
	resp := ClassifyResponse{Labels: labels}

	for i, record := range result.Records {
		out := ScoreRecord{
			DocumentIndex: record.DocumentIndex,
			Scores:        roundScores(record.Scores),
		}
		if assignments != nil {
			out.Relevant = assignments[i].Relevant
		}
		resp.Records = append(resp.Records, out)
	}

	for _, skip := range result.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedDocument{
			DocumentIndex: skip.DocumentIndex,
			Reason:        skip.Err.Error(),
		})
	}

	return resp
}

func roundScores(scores map[string]float64) map[string]float64 {
	rounded := make(map[string]float64, len(scores))
	for label, score := range scores {
		rounded[label] = utils.RoundDecimal(score, domain.ScoreDecimalPlaces)
	}
	return rounded
}
