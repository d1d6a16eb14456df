package review_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkyoung/smart-code-reviewer/internal/usecase/review"
)

func TestSystemPrompt_SpecifiesContract(t *testing.T) {
	prompt := review.SystemPrompt()

	// The instruction must pin down the three dimensions and every field
	// of the expected schema.
	for _, want := range []string{
		"Readability",
		"Structure",
		"Maintainability",
		`"language"`,
		`"categories"`,
		`"score"`,
		`"summary"`,
		`"suggestions"`,
		`"overall_score"`,
		`"tldr"`,
		"no markdown fences",
	} {
		assert.Contains(t, prompt, want)
	}
}

func TestSystemPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, review.SystemPrompt(), review.SystemPrompt())
}

func TestUserPrompt_EmbedsCodeVerbatim(t *testing.T) {
	code := "def f(x):\n    return x * 2  # weird  spacing\n"

	msg := review.UserPrompt(code)

	assert.Contains(t, msg, code)
	assert.True(t, strings.HasPrefix(msg, "Review the following code:"))
	assert.Equal(t, msg, review.UserPrompt(code))
}
