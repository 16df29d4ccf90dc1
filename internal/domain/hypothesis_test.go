package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHypothesisTemplate_Render(t *testing.T) {
	template := HypothesisTemplate("This text is about {}")
	require.NoError(t, template.Validate())

	assert.Equal(t, "This text is about water pollution", template.Render("water pollution"))
}

func TestHypothesisTemplate_Validate(t *testing.T) {
	noSlot := HypothesisTemplate("This text is about something")
	assert.Error(t, noSlot.Validate())

	twoSlots := HypothesisTemplate("{} is about {}")
	assert.Error(t, twoSlots.Validate())

	assert.NoError(t, DefaultHypothesisTemplate.Validate())
}
