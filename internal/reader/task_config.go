package reader

import (
	"io"

	"github.com/zeroshot-labs/label-hunter/internal/apperr"
	"github.com/zeroshot-labs/label-hunter/internal/domain"
	"gopkg.in/yaml.v3"
)

// TaskConfig describes one labeling run: the candidate label set, the
// hypothesis template and the hard-labeling threshold, plus how to read
// the document collection.
type TaskConfig struct {
	Task struct {
		Labels             []string `yaml:"labels"`
		HypothesisTemplate string   `yaml:"hypothesis_template"`
		Threshold          *float64 `yaml:"threshold"`
	} `yaml:"task"`

	Source struct {
		TextColumn string `yaml:"text_column"`
		MinTokens  int    `yaml:"min_tokens"`
		MaxTokens  int    `yaml:"max_tokens"`
		SampleSize int    `yaml:"sample_size"`
		SampleSeed int64  `yaml:"sample_seed"`
	} `yaml:"source"`
}

func (c *TaskConfig) Template() domain.HypothesisTemplate {
	if c.Task.HypothesisTemplate == "" {
		return domain.DefaultHypothesisTemplate
	}
	return domain.HypothesisTemplate(c.Task.HypothesisTemplate)
}

func (c *TaskConfig) Validate() error {
	if len(c.Task.Labels) == 0 {
		return apperr.NewValidation("task has no labels")
	}
	seen := make(map[string]struct{}, len(c.Task.Labels))
	for _, label := range c.Task.Labels {
		if label == "" {
			return apperr.NewValidation("task has an empty label")
		}
		if _, dup := seen[label]; dup {
			return apperr.NewValidation("task has duplicate label " + label)
		}
		seen[label] = struct{}{}
	}

	if err := c.Template().Validate(); err != nil {
		return err
	}

	if th := c.Task.Threshold; th != nil && (*th < 0 || *th > 1) {
		return apperr.NewInvalidThreshold(*th)
	}

	if c.Source.MaxTokens > 0 && c.Source.MinTokens > c.Source.MaxTokens {
		return apperr.NewValidation("source min_tokens is greater than max_tokens")
	}

	return nil
}

type YAMLTaskLoader struct {
	reader io.Reader
}

func NewYAMLTaskLoader(reader io.Reader) *YAMLTaskLoader {
	return &YAMLTaskLoader{
		reader: reader,
	}
}

func (tl *YAMLTaskLoader) Load(validate bool) (*TaskConfig, error) {
	decoder := yaml.NewDecoder(tl.reader)
	var cfg TaskConfig
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
