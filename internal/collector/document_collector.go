package collector

import (
	"context"
	"log/slog"

	"github.com/zeroshot-labs/label-hunter/internal/domain"
	"github.com/zeroshot-labs/label-hunter/internal/reader"
)

// DocumentCollector streams documents out of a DocumentSource. The
// source is loaded up front because subsampling needs the full filtered
// collection before any document can be emitted.
type DocumentCollector struct {
	Source *reader.DocumentSource
}

func NewDocumentCollector(source *reader.DocumentSource) *DocumentCollector {
	return &DocumentCollector{
		Source: source,
	}
}

func (dc *DocumentCollector) Collect(ctx context.Context) (<-chan Result[domain.Document], error) {
	docs, err := dc.Source.Load()
	if err != nil {
		return nil, err
	}

	slog.Info("Collected documents from source", "count", len(docs))

	out := make(chan Result[domain.Document])
	go func() {
		defer close(out)

		for _, doc := range docs {
			select {
			case <-ctx.Done():
				slog.Info("Context cancelled, stopping document collection")
				return
			case out <- Result[domain.Document]{Result: doc}:
			}
		}
	}()

	return out, nil
}
