package quizgen

import (
	"strings"
	"testing"

	"istqb-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	text := domain.NormalizeText(strings.Repeat("é", 20))
	target := domain.DifficultyTarget{Expert: 18, Master: 8, Champion: 12}

	got := BuildPrompt(text, target, 5)

	assert.Contains(t, got, "Create 38 multiple-choice questions")
	assert.Contains(t, got, "Expert 18, Master 8, Champion 12")
	assert.Contains(t, got, "exactly 4 options and one correct_answer (0-3)")
	assert.True(t, strings.HasSuffix(got, "PDF Content (trimmed):\nééééé"))
}

func TestOptions_WithDefaults(t *testing.T) {
	assert.Equal(t, DefaultOptions, Options{}.withDefaults())

	custom := Options{Temperature: 0.2, MaxTokens: 10, ExcerptChars: 3, Timeout: DefaultOptions.Timeout}
	assert.Equal(t, custom, custom.withDefaults())
}
