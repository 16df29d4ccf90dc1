package domain

import (
	"fmt"
	"strings"

	"github.com/zeroshot-labs/label-hunter/internal/apperr"
)

// TemplateSlot is the substitution marker a hypothesis template must
// contain exactly once.
const TemplateSlot = "{}"

const DefaultHypothesisTemplate = HypothesisTemplate("This example is about {}.")

// HypothesisTemplate turns a candidate label into an NLI hypothesis
// sentence, e.g. "This text is about {}" + "water pollution".
type HypothesisTemplate string

func (t HypothesisTemplate) Validate() error {
	switch strings.Count(string(t), TemplateSlot) {
	case 0:
		return apperr.NewValidation(fmt.Sprintf("hypothesis template %q has no %s slot", t, TemplateSlot))
	case 1:
		return nil
	default:
		return apperr.NewValidation(fmt.Sprintf("hypothesis template %q has more than one %s slot", t, TemplateSlot))
	}
}

func (t HypothesisTemplate) Render(label string) string {
	return strings.Replace(string(t), TemplateSlot, label, 1)
}
