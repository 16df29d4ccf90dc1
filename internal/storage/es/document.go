package es

import (
	"time"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
	"github.com/zeroshot-labs/label-hunter/internal/domain"
)

// LabeledDocument represents the indexed shape of one labeling result.
type LabeledDocument struct {
	ID             string             `json:"id"`
	RunID          string             `json:"run_id"`
	Text           string             `json:"text"`
	SourceName     string             `json:"source_name"`
	SourceRow      int                `json:"source_row"`
	Labels         []string           `json:"labels"`
	Scores         map[string]float64 `json:"scores"`
	AssignedLabels []string           `json:"assigned_labels,omitempty"`
	Threshold      *float64           `json:"threshold,omitempty"`
	ImportedAt     time.Time          `json:"imported_at"`
	IndexedAt      time.Time          `json:"indexed_at"`
}

type IndexBuilder struct {
}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{}
}

func (b *IndexBuilder) mapToESDocument(doc domain.LabeledDocument) LabeledDocument {
	if doc.Document.ID == uuid.Nil {
		doc.Document.ID = uuid.New()
	}

	out := LabeledDocument{
		ID:         doc.Document.ID.String(),
		RunID:      doc.RunID.String(),
		Text:       doc.Document.Text,
		SourceName: doc.Document.Metadata.SourceName,
		SourceRow:  doc.Document.Metadata.SourceRow,
		Labels:     doc.Record.Labels,
		Scores:     doc.Record.Scores,
		ImportedAt: doc.Document.Metadata.ImportedAt,
		IndexedAt:  time.Now(),
	}

	if doc.Assignment != nil {
		threshold := doc.Assignment.Threshold
		out.Threshold = &threshold
		for _, label := range doc.Record.Labels {
			if doc.Assignment.Relevant[label] {
				out.AssignedLabels = append(out.AssignedLabels, label)
			}
		}
	}

	return out
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				"document_analyzer": types.StandardAnalyzer{
					Stopwords: []string{"_none_"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":              types.NewKeywordProperty(),
			"run_id":          types.NewKeywordProperty(),
			"text":            b.createTextProperty("document_analyzer"),
			"source_name":     b.createTextPropertyWithKeyword(""),
			"source_row":      types.NewIntegerNumberProperty(),
			"labels":          types.NewKeywordProperty(),
			"assigned_labels": types.NewKeywordProperty(),
			"threshold":       types.NewFloatNumberProperty(),
			"scores":          types.NewObjectProperty(),
			"imported_at":     types.NewDateProperty(),
			"indexed_at":      types.NewDateProperty(),
		},
	}
}

func (b *IndexBuilder) createTextProperty(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	return textProp
}

func (b *IndexBuilder) createTextPropertyWithKeyword(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
