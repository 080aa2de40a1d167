package quizgen

import (
	"context"
	"strings"
	"testing"

	"istqb-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Testing shows defects. Exhaustive testing is impossible!  Why test early? v1.2 is fine")

	assert.Equal(t, []string{
		"Testing shows defects.",
		"Exhaustive testing is impossible!",
		"Why test early?",
		"v1.2 is fine",
	}, got)
	assert.Empty(t, splitSentences("   "))
}

func TestHeuristicQuestionGenerator_Generate(t *testing.T) {
	g := NewHeuristicQuestionGenerator(0, 0)
	long := "Risk based testing prioritises test activities by the likelihood and impact of failures."
	text := domain.NormalizeText("Too short. " + long + " " + strings.Repeat("x", 300) + ".")

	got, err := g.Generate(context.Background(), text, "doc.pdf", domain.DifficultyTarget{Expert: 1, Master: 1, Champion: 1})

	require.NoError(t, err)
	require.Len(t, got, 1, "only the sentence within the length bounds is kept")
	qs := domain.Sanitize(got, "doc.pdf")
	require.Len(t, qs, 1)
	q := qs[0]
	assert.Equal(t, "Which option best reflects the statement: "+long, q.Text())
	stem := domain.TruncateRunes(long, 90)
	assert.Equal(t, []string{
		"Directly supports: " + stem,
		"Contradicts: " + stem,
		"Irrelevant to: " + stem,
		"Partially supports: " + stem,
	}, q.Options())
	assert.Equal(t, 0, q.CorrectAnswer())
	assert.Equal(t, domain.DifficultyExpert, q.Difficulty())
	assert.Equal(t, 7, q.ComplexityScore())
	assert.Equal(t, "ISTQB", q.Category())
	assert.Equal(t, "Derived from source content; validate against the PDF.", q.Explanation())
	assert.Equal(t, "Recall the key phrase of the statement.", q.Hint())
	assert.Equal(t, "Heuristic conversion from statement to concept question.", q.Reasoning())
}

func TestHeuristicQuestionGenerator_TiersAndCap(t *testing.T) {
	g := NewHeuristicQuestionGenerator(5, 100)
	var sentences []string
	for i := 0; i < 10; i++ {
		sentences = append(sentences, "Statement number "+strings.Repeat("a", i+1)+" is here.")
	}
	text := domain.NormalizeText(strings.Join(sentences, " "))
	target := domain.DifficultyTarget{Expert: 2, Master: 1, Champion: 3}

	got, err := g.Generate(context.Background(), text, "doc.pdf", target)

	require.NoError(t, err)
	qs := domain.Sanitize(got, "doc.pdf")
	require.Len(t, qs, 6, "capped at the target total")
	var tiers []domain.Difficulty
	var scores []int
	for _, q := range qs {
		tiers = append(tiers, q.Difficulty())
		scores = append(scores, q.ComplexityScore())
	}
	assert.Equal(t, []domain.Difficulty{
		domain.DifficultyExpert, domain.DifficultyExpert, domain.DifficultyMaster,
		domain.DifficultyChampion, domain.DifficultyChampion, domain.DifficultyChampion,
	}, tiers)
	assert.Equal(t, []int{7, 7, 8, 9, 9, 9}, scores)
}

func TestHeuristicQuestionGenerator_NothingEligible(t *testing.T) {
	g := NewHeuristicQuestionGenerator(40, 240)

	got, err := g.Generate(context.Background(), domain.NormalizeText("Short. Also short."), "doc.pdf", domain.DifficultyTarget{Expert: 4})

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, domain.HeuristicStrategyName, g.Name())
}
