package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeStep(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected Step
	}{
		{"title and body", "Plan|Think first", Step{Title: "Plan", Body: "Think first"}},
		{"trims both parts", "  Plan  |  Think  ", Step{Title: "Plan", Body: "Think"}},
		{"splits on first separator only", "A|b|c", Step{Title: "A", Body: "b|c"}},
		{"no separator", "Just a title", Step{Title: "Just a title"}},
		{"empty title", "|Body only", Step{Title: DefaultStepTitle, Body: "Body only"}},
		{"empty line", "", Step{Title: DefaultStepTitle}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeStep(tt.line))
		})
	}
}

func TestEncodeStep(t *testing.T) {
	assert.Equal(t, "Plan|Think", EncodeStep(Step{Title: "Plan", Body: "Think"}))
	assert.Equal(t, "Plan", EncodeStep(Step{Title: "Plan"}))

	for _, line := range DefaultHowIWorkSteps() {
		assert.Equal(t, line, EncodeStep(DecodeStep(line)))
	}
}

func TestDecodeSteps(t *testing.T) {
	steps := DecodeSteps(DefaultHowIWorkSteps())
	assert.Len(t, steps, 3)
	assert.Equal(t, "Discover & Design", steps[0].Title)
	assert.Equal(t, "Deploy & Learn", steps[2].Title)
	assert.Empty(t, DecodeSteps(nil))
}
