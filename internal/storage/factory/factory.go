package factory

import (
	"context"
	"fmt"

	"github.com/zeroshot-labs/label-hunter/internal/storage"
	"github.com/zeroshot-labs/label-hunter/internal/storage/es"
	"github.com/zeroshot-labs/label-hunter/internal/storage/in_mem"
	"github.com/zeroshot-labs/label-hunter/internal/storage/pg"
)

// NewStorer creates a storage.Storer for the configured backend
func NewStorer(ctx context.Context, cfg *StorageConfig) (storage.Storer, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL config for storage type %s", cfg.Type)
		}

		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		return pg.NewStorer(pool)

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch config for storage type %s", cfg.Type)
		}

		return es.NewStorer(ctx, *cfg.Es)

	case storage.InMem:
		return in_mem.NewInMemStorer(), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
