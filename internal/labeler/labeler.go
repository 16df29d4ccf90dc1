package labeler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zeroshot-labs/label-hunter/internal/apperr"
	"github.com/zeroshot-labs/label-hunter/internal/domain"
	"github.com/zeroshot-labs/label-hunter/internal/nli"
)

const defaultBatchSize = 16

// FailurePolicy decides what happens when the scoring service fails on a
// single document. There is no silent option: a document either fails
// the whole run or ends up in the skip report.
type FailurePolicy int

const (
	// FailFast fails the whole run on the first failing document.
	FailFast FailurePolicy = iota

	// SkipAndReport drops the failing document from the results and
	// records its index and error in the BatchResult.
	SkipAndReport
)

// Skip records one document the scoring service failed on.
type Skip struct {
	DocumentIndex int
	Err           error
}

// BatchResult is the outcome of one scoring run. Records are ordered by
// document index; under SkipAndReport the failed indexes appear in
// Skipped instead of Records.
type BatchResult struct {
	Records []domain.ScoreRecord
	Skipped []Skip
}

// Labeler scores documents against a fixed label set via an NLI scoring
// client. All labels for one document are scored in a single service
// call so they share the same model context; batching only groups
// documents, never splits labels.
type Labeler struct {
	model     string
	batchSize int
	workers   int
	policy    FailurePolicy

	client nli.Client
}

type Option func(l *Labeler)

func New(client nli.Client, opts ...Option) *Labeler {
	l := &Labeler{
		batchSize: defaultBatchSize,
		workers:   1,
		policy:    FailFast,
		client:    client,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func WithModel(model string) Option {
	return func(l *Labeler) {
		l.model = model
	}
}

// WithBatchSize bounds how many documents are in flight per batch. It
// trades throughput against peak memory and has no correctness impact.
func WithBatchSize(size int) Option {
	return func(l *Labeler) {
		if size > 0 {
			l.batchSize = size
		}
	}
}

// WithWorkers processes batches concurrently. Batches share no mutable
// state; output order is restored by batch index.
func WithWorkers(workers int) Option {
	return func(l *Labeler) {
		if workers > 0 {
			l.workers = workers
		}
	}
}

func WithFailurePolicy(policy FailurePolicy) Option {
	return func(l *Labeler) {
		l.policy = policy
	}
}

// Score computes one ScoreRecord per document, in input order. Scores
// are independent per label (multi-label semantics) and lie in [0, 1].
func (l *Labeler) Score(ctx context.Context, docs []string, labels []string, template domain.HypothesisTemplate) (*BatchResult, error) {
	if err := validateInputs(docs, labels, template); err != nil {
		return nil, err
	}

	hypotheses := make([]string, len(labels))
	for i, label := range labels {
		hypotheses[i] = template.Render(label)
	}

	slog.Debug("Scoring documents",
		"documents", len(docs),
		"labels", len(labels),
		"batch_size", l.batchSize,
		"workers", l.workers,
	)

	batches := splitBatches(len(docs), l.batchSize)

	if l.workers <= 1 || len(batches) == 1 {
		return l.scoreSequential(ctx, docs, labels, hypotheses, batches)
	}
	return l.scoreConcurrent(ctx, docs, labels, hypotheses, batches)
}

// AssignAll derives hard-label assignments for every record. Pure and
// recomputable for any threshold in [0, 1].
func AssignAll(records []domain.ScoreRecord, threshold float64) ([]domain.LabelAssignment, error) {
	assignments := make([]domain.LabelAssignment, len(records))
	for i, record := range records {
		assignment, err := domain.Assign(record, threshold)
		if err != nil {
			return nil, err
		}
		assignments[i] = assignment
	}
	return assignments, nil
}

func validateInputs(docs []string, labels []string, template domain.HypothesisTemplate) error {
	if len(docs) == 0 {
		return apperr.NewValidation("empty document collection")
	}
	for i, doc := range docs {
		if doc == "" {
			return apperr.NewValidation(fmt.Sprintf("document %d is empty", i))
		}
	}
	if len(labels) == 0 {
		return apperr.NewValidation("empty label set")
	}
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if label == "" {
			return apperr.NewValidation("empty label in label set")
		}
		if _, dup := seen[label]; dup {
			return apperr.NewValidation("duplicate label " + label)
		}
		seen[label] = struct{}{}
	}
	return template.Validate()
}

type batch struct {
	index int
	start int
	end   int // exclusive
}

func splitBatches(total, size int) []batch {
	var batches []batch
	for start := 0; start < total; start += size {
		end := start + size
		if end > total {
			end = total
		}
		batches = append(batches, batch{index: len(batches), start: start, end: end})
	}
	return batches
}

type batchOutcome struct {
	records []domain.ScoreRecord
	skipped []Skip
	err     error
}

func (l *Labeler) scoreSequential(ctx context.Context, docs, labels, hypotheses []string, batches []batch) (*BatchResult, error) {
	result := &BatchResult{}
	for _, b := range batches {
		outcome := l.scoreBatch(ctx, docs, labels, hypotheses, b)
		if outcome.err != nil {
			return nil, outcome.err
		}
		result.Records = append(result.Records, outcome.records...)
		result.Skipped = append(result.Skipped, outcome.skipped...)
	}
	return result, nil
}

func (l *Labeler) scoreConcurrent(ctx context.Context, docs, labels, hypotheses []string, batches []batch) (*BatchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]batchOutcome, len(batches))
	jobs := make(chan batch)

	var wg sync.WaitGroup
	wg.Add(l.workers)
	for w := 0; w < l.workers; w++ {
		go func() {
			defer wg.Done()
			for b := range jobs {
				outcome := l.scoreBatch(ctx, docs, labels, hypotheses, b)
				outcomes[b.index] = outcome
				if outcome.err != nil {
					cancel()
				}
			}
		}()
	}

	for _, b := range batches {
		select {
		case jobs <- b:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	// A failing batch cancels the others, so sibling batches report
	// context.Canceled. Surface the originating error, not the fallout.
	var firstErr error
	for _, outcome := range outcomes {
		if outcome.err == nil {
			continue
		}
		if firstErr == nil || (errors.Is(firstErr, context.Canceled) && !errors.Is(outcome.err, context.Canceled)) {
			firstErr = outcome.err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stitch results back together in batch order so the output keeps
	// the input document order.
	result := &BatchResult{}
	for _, outcome := range outcomes {
		result.Records = append(result.Records, outcome.records...)
		result.Skipped = append(result.Skipped, outcome.skipped...)
	}

	return result, nil
}

func (l *Labeler) scoreBatch(ctx context.Context, docs, labels, hypotheses []string, b batch) batchOutcome {
	var outcome batchOutcome
	for i := b.start; i < b.end; i++ {
		if err := ctx.Err(); err != nil {
			outcome.err = err
			return outcome
		}

		record, err := l.scoreDocument(ctx, i, docs[i], labels, hypotheses)
		if err != nil {
			if l.policy == SkipAndReport {
				slog.Warn("Skipping document after scoring failure", "document_index", i, "error", err)
				outcome.skipped = append(outcome.skipped, Skip{DocumentIndex: i, Err: err})
				continue
			}
			outcome.err = fmt.Errorf("document %d: %w", i, err)
			return outcome
		}
		outcome.records = append(outcome.records, record)
	}
	return outcome
}

func (l *Labeler) scoreDocument(ctx context.Context, index int, doc string, labels, hypotheses []string) (domain.ScoreRecord, error) {
	res, err := l.client.Classify(ctx, nli.Request{
		Model:      l.model,
		Premise:    doc,
		Labels:     labels,
		Hypotheses: hypotheses,
		MultiLabel: true,
	})
	if err != nil {
		return domain.ScoreRecord{}, err
	}

	// The service may reorder labels (typically by score), so join by
	// name rather than trusting positions.
	scores := make(map[string]float64, len(labels))
	for _, label := range labels {
		score, ok := res.ScoreFor(label)
		if !ok {
			return domain.ScoreRecord{}, apperr.NewScoringUnavailable("service response missing label "+label, nil)
		}
		scores[label] = score
	}

	record := domain.ScoreRecord{
		DocumentIndex: index,
		Labels:        labels,
		Scores:        scores,
	}
	if err := record.Validate(); err != nil {
		return domain.ScoreRecord{}, apperr.NewScoringUnavailable("service returned an invalid score", err)
	}

	return record, nil
}
