package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/zeroshot-labs/label-hunter/internal/domain"
)

// Storer persists the results of a labeling run.
type Storer interface {
	Save(ctx context.Context, doc domain.LabeledDocument) (uuid.UUID, error)
	SaveBulk(ctx context.Context, docs []domain.LabeledDocument) error
}

type Type string

const (
	ES    Type = "es"
	PG         = "pg"
	InMem      = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
