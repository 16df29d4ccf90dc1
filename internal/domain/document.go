package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is an opaque piece of text to classify. Identity is positional
// within a run; the ID only matters once results are persisted.
type Document struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`

	Metadata DocumentMetadata `json:"metadata"`
}

type DocumentMetadata struct {
	// Essential source tracking
	SourceName string `json:"sourceName,omitempty"`
	SourceRow  int    `json:"sourceRow,omitempty"`

	// System metadata
	ImportedAt time.Time `json:"importedAt,omitempty"`
}

// TokenCount counts whitespace-separated tokens. Used for the
// token-count range filter on document sources.
func (d Document) TokenCount() int {
	return len(strings.Fields(d.Text))
}
