package reader

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/zeroshot-labs/label-hunter/internal/apperr"
	"github.com/zeroshot-labs/label-hunter/internal/domain"
)

const defaultTextColumn = "text"

// DocumentSource turns raw dataset records into an ordered document
// collection. It can drop documents outside a token-count range and
// subsample with a fixed seed so runs stay reproducible. The underlying
// reader is consumed once; a source is not restartable.
type DocumentSource struct {
	reader     Reader
	textColumn string
	sourceName string
	clean      func(string) string

	minTokens int
	maxTokens int // 0 means unbounded

	sampleSize int
	sampleSeed int64
}

type SourceOption func(s *DocumentSource)

func NewDocumentSource(r Reader, opts ...SourceOption) *DocumentSource {
	s := &DocumentSource{
		reader:     r,
		textColumn: defaultTextColumn,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func WithTextColumn(column string) SourceOption {
	return func(s *DocumentSource) {
		s.textColumn = column
	}
}

func WithSourceName(name string) SourceOption {
	return func(s *DocumentSource) {
		s.sourceName = name
	}
}

// WithCleaner applies a text normalization step to every document
// before filtering.
func WithCleaner(clean func(string) string) SourceOption {
	return func(s *DocumentSource) {
		s.clean = clean
	}
}

// WithTokenRange keeps only documents whose whitespace token count lies
// in [min, max]. max of 0 means no upper bound.
func WithTokenRange(min, max int) SourceOption {
	return func(s *DocumentSource) {
		s.minTokens = min
		s.maxTokens = max
	}
}

// WithSample randomly subsamples up to size documents using the given
// seed. Input order is preserved among the sampled documents.
func WithSample(size int, seed int64) SourceOption {
	return func(s *DocumentSource) {
		s.sampleSize = size
		s.sampleSeed = seed
	}
}

// Load reads, cleans, filters and samples the collection.
func (s *DocumentSource) Load() ([]domain.Document, error) {
	records, err := s.reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var docs []domain.Document
	now := time.Now()
	for i, record := range records {
		text, ok := record[s.textColumn]
		if !ok {
			return nil, apperr.NewValidation(fmt.Sprintf("record %d has no column %q", i, s.textColumn))
		}

		if s.clean != nil {
			text = s.clean(text)
		}
		if text == "" {
			continue
		}

		doc := domain.Document{
			ID:   uuid.New(),
			Text: text,
			Metadata: domain.DocumentMetadata{
				SourceName: s.sourceName,
				SourceRow:  i,
				ImportedAt: now,
			},
		}

		tokens := doc.TokenCount()
		if tokens < s.minTokens {
			continue
		}
		if s.maxTokens > 0 && tokens > s.maxTokens {
			continue
		}

		docs = append(docs, doc)
	}

	if s.sampleSize > 0 && s.sampleSize < len(docs) {
		docs = subsample(docs, s.sampleSize, s.sampleSeed)
	}

	return docs, nil
}

func subsample(docs []domain.Document, size int, seed int64) []domain.Document {
	rng := rand.New(rand.NewSource(seed))
	picked := rng.Perm(len(docs))[:size]
	sort.Ints(picked)

	sampled := make([]domain.Document, size)
	for i, idx := range picked {
		sampled[i] = docs[idx]
	}
	return sampled
}
