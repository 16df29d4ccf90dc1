package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/zeroshot-labs/label-hunter/internal/collector"
	"github.com/zeroshot-labs/label-hunter/internal/domain"
	"github.com/zeroshot-labs/label-hunter/internal/labeler"
	"github.com/zeroshot-labs/label-hunter/internal/storage"
)

const defaultChunkSize = 64

// Pipeline defines the interface for data processing pipelines
type Pipeline interface {
	// Run executes the pipeline with the given context
	Run(ctx context.Context) error

	// Stop gracefully stops the pipeline
	Stop()
}

// PipelineConfig defines one labeling run
type PipelineConfig struct {
	Name string

	Labels   []string
	Template domain.HypothesisTemplate

	// Threshold, when set, also derives hard-label assignments.
	Threshold *float64

	// ChunkSize is how many documents are scored and stored at a time.
	ChunkSize int
}

// LabelPipeline drives a labeling run from collection through scoring
// to storage.
type LabelPipeline struct {
	collector collector.Collector[domain.Document]
	labeler   *labeler.Labeler
	storer    storage.Storer
	config    *PipelineConfig

	runID uuid.UUID
}

type PipelineOption func(pipeline *LabelPipeline)

// WithChunkSize sets how many documents move through score+store together
func WithChunkSize(size int) PipelineOption {
	return func(pipeline *LabelPipeline) {
		if size > 0 {
			pipeline.config.ChunkSize = size
		}
	}
}

// WithThreshold enables hard labeling at the given threshold
func WithThreshold(threshold float64) PipelineOption {
	return func(pipeline *LabelPipeline) {
		pipeline.config.Threshold = &threshold
	}
}

// WithName sets the pipeline name used in logs
func WithName(name string) PipelineOption {
	return func(pipeline *LabelPipeline) {
		pipeline.config.Name = name
	}
}

// NewLabelPipeline creates a labeling pipeline for one label set and template
func NewLabelPipeline(
	c collector.Collector[domain.Document],
	l *labeler.Labeler,
	storer storage.Storer,
	labels []string,
	template domain.HypothesisTemplate,
	opts ...PipelineOption,
) *LabelPipeline {
	p := &LabelPipeline{
		collector: c,
		labeler:   l,
		storer:    storer,
		config: &PipelineConfig{
			Name:      "label-pipeline",
			Labels:    labels,
			Template:  template,
			ChunkSize: defaultChunkSize,
		},
		runID: uuid.New(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *LabelPipeline) RunID() uuid.UUID {
	return p.runID
}

// Run executes the pipeline
func (p *LabelPipeline) Run(ctx context.Context) error {
	start := time.Now()
	slog.Info("🛫 Starting labeling run",
		"pipeline", p.config.Name,
		"run_id", p.runID,
		"labels", len(p.config.Labels),
		"chunk_size", p.config.ChunkSize,
	)

	results, err := p.collector.Collect(ctx)
	if err != nil {
		slog.Error("Error collecting documents", "error", err, "pipeline", p.config.Name)
		return err
	}

	runErr := p.process(ctx, results)

	duration := time.Since(start)
	slog.Info("Labeling run completed",
		"pipeline", p.config.Name,
		"run_id", p.runID,
		"duration", duration,
		"error", runErr,
	)

	return runErr
}

func (p *LabelPipeline) process(ctx context.Context, results <-chan collector.Result[domain.Document]) error {
	var chunk []domain.Document
	scoredCount := 0
	skippedCount := 0
	errorCount := 0
	baseIndex := 0

	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		scored, skipped, err := p.scoreAndStore(ctx, chunk, baseIndex)
		if err != nil {
			return err
		}
		scoredCount += scored
		skippedCount += skipped
		baseIndex += len(chunk)
		chunk = chunk[:0]
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Pipeline context cancelled, stopping collection",
				"pipeline", p.config.Name,
				"scored", scoredCount,
				"skipped", skippedCount,
				"errors", errorCount,
			)
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				if err := flush(); err != nil {
					return err
				}
				slog.Info("Collection channel closed, run finished",
					"pipeline", p.config.Name,
					"scored", scoredCount,
					"skipped", skippedCount,
					"errors", errorCount,
				)
				return nil
			}

			if res.Err != nil {
				slog.Error("Error collecting document", "error", res.Err, "pipeline", p.config.Name)
				errorCount++
				continue
			}

			chunk = append(chunk, res.Result)

			if len(chunk) >= p.config.ChunkSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}
}

func (p *LabelPipeline) scoreAndStore(ctx context.Context, docs []domain.Document, baseIndex int) (scored, skipped int, err error) {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	result, err := p.labeler.Score(ctx, texts, p.config.Labels, p.config.Template)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to score chunk at %d: %w", baseIndex, err)
	}

	labeled := make([]domain.LabeledDocument, 0, len(result.Records))
	for _, record := range result.Records {
		doc := docs[record.DocumentIndex]
		record.DocumentIndex += baseIndex

		ld := domain.LabeledDocument{
			RunID:    p.runID,
			Document: doc,
			Record:   record,
		}

		if p.config.Threshold != nil {
			assignment, err := domain.Assign(record, *p.config.Threshold)
			if err != nil {
				return 0, 0, err
			}
			ld.Assignment = &assignment
		}

		labeled = append(labeled, ld)
	}

	for _, skip := range result.Skipped {
		slog.Warn("Document skipped by scoring service",
			"pipeline", p.config.Name,
			"document_index", baseIndex+skip.DocumentIndex,
			"error", skip.Err,
		)
	}

	if err := p.storer.SaveBulk(ctx, labeled); err != nil {
		return 0, 0, fmt.Errorf("failed to store chunk at %d: %w", baseIndex, err)
	}

	slog.Debug("Chunk scored and stored",
		"pipeline", p.config.Name,
		"chunk_start", baseIndex,
		"scored", len(labeled),
		"skipped", len(result.Skipped),
	)

	return len(labeled), len(result.Skipped), nil
}

// Stop gracefully stops the pipeline
func (p *LabelPipeline) Stop() {
	slog.Info("Stopping pipeline...", "pipeline", p.config.Name)

	if p.storer != nil {
		p.storer = nil
		slog.Debug("Storer cleaned up", "pipeline", p.config.Name)
	}

	slog.Info("Pipeline stopped", "pipeline", p.config.Name)
}
