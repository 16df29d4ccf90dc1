package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zeroshot-labs/label-hunter/internal/domain"
)

type Storer struct {
	db *pgxpool.Pool
}

func NewStorer(pool *ConnectionPool) (*Storer, error) {
	return &Storer{db: pool.conn}, nil
}

func (s *Storer) Save(ctx context.Context, doc domain.LabeledDocument) (uuid.UUID, error) {
	row, err := toRow(doc, time.Now())
	if err != nil {
		return uuid.UUID{}, err
	}

	cmd := `
        INSERT INTO labeled_documents (id, run_id, text, source_name, source_row, scores, assignment, imported_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id;
    `
	var id uuid.UUID
	err = s.db.QueryRow(ctx, cmd, row...).Scan(&id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to insert labeled document: %w", err)
	}

	return id, nil
}

func (s *Storer) SaveBulk(ctx context.Context, docs []domain.LabeledDocument) error {
	rows := make([][]interface{}, len(docs))
	now := time.Now()

	for i, doc := range docs {
		row, err := toRow(doc, now)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		rows[i] = row
	}

	_, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"labeled_documents"},
		[]string{"id", "run_id", "text", "source_name", "source_row", "scores", "assignment", "imported_at"},
		pgx.CopyFromRows(rows),
	)

	if err != nil {
		return fmt.Errorf("failed to bulk insert labeled documents: %w", err)
	}
	return nil
}

func toRow(doc domain.LabeledDocument, now time.Time) ([]interface{}, error) {
	if doc.Document.ID == uuid.Nil {
		doc.Document.ID = uuid.New()
	}
	if doc.Document.Metadata.ImportedAt.IsZero() {
		doc.Document.Metadata.ImportedAt = now
	}

	scoresJSON, err := json.Marshal(doc.Record.Scores)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scores: %w", err)
	}

	var assignmentJSON []byte
	if doc.Assignment != nil {
		assignmentJSON, err = json.Marshal(doc.Assignment)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal assignment: %w", err)
		}
	}

	return []interface{}{
		doc.Document.ID,
		doc.RunID,
		doc.Document.Text,
		doc.Document.Metadata.SourceName,
		doc.Document.Metadata.SourceRow,
		scoresJSON,
		assignmentJSON,
		doc.Document.Metadata.ImportedAt,
	}, nil
}
