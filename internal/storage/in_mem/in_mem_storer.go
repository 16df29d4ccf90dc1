package in_mem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/zeroshot-labs/label-hunter/internal/domain"
)

type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]domain.LabeledDocument
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[uuid.UUID]domain.LabeledDocument),
	}
}

func (s *InMemStorer) Save(ctx context.Context, doc domain.LabeledDocument) (uuid.UUID, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if doc.Document.ID == uuid.Nil {
		doc.Document.ID = uuid.New()
	}
	s.storage[doc.Document.ID] = doc

	return doc.Document.ID, nil
}

func (s *InMemStorer) SaveBulk(ctx context.Context, docs []domain.LabeledDocument) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, doc := range docs {
		if doc.Document.ID == uuid.Nil {
			doc.Document.ID = uuid.New()
		}
		s.storage[doc.Document.ID] = doc
		slog.Debug("Saved labeled document to in-memory storage", "id", doc.Document.ID, "run", doc.RunID)
	}

	return nil
}

// All returns the stored labeled documents. Test helper.
func (s *InMemStorer) All() []domain.LabeledDocument {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	out := make([]domain.LabeledDocument, 0, len(s.storage))
	for _, doc := range s.storage {
		out = append(out, doc)
	}
	return out
}
