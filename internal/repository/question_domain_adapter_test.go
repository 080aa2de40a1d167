package repository

import (
	"database/sql"
	"testing"
	"time"

	"istqb-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelQuestion_EmptyOptionalTextIsBound(t *testing.T) {
	q, ok := domain.SanitizeOne(domain.CandidateQuestion{
		"question":    "What does a test oracle provide?",
		"options":     []any{"Expected results", "Test data", "Coverage", "Defects"},
		"explanation": "Oracles give expected results.",
	}, "syllabus.pdf")
	require.True(t, ok)

	m := toModelQuestion(q, "01HX", time.Now())

	assert.Equal(t, sql.NullString{String: "Oracles give expected results.", Valid: true}, m.Explanation)
	assert.Equal(t, sql.NullString{String: "", Valid: true}, m.Hint)
	assert.Equal(t, sql.NullString{String: "", Valid: true}, m.Reasoning)

	hint, err := m.Hint.Value()
	require.NoError(t, err)
	assert.Equal(t, "", hint, "NOT NULL columns must never receive NULL")
}
