package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() CandidateQuestion {
	return CandidateQuestion{
		"question":         "Which test technique is black-box?",
		"options":          []any{"Equivalence partitioning", "Statement coverage", "Branch coverage", "Code review"},
		"correct_answer":   float64(0),
		"explanation":      "EP derives tests from partitions of the input domain.",
		"hint":             "Think of input domains.",
		"category":         "Test Design Techniques",
		"difficulty":       "Master",
		"reasoning":        "Classifies techniques.",
		"complexity_score": float64(8),
		"source_pdf":       "spoofed.pdf",
	}
}

func TestSanitize_ValidCandidate(t *testing.T) {
	got := Sanitize([]CandidateQuestion{validCandidate()}, "syllabus.pdf")

	require.Len(t, got, 1)
	q := got[0]
	assert.Equal(t, "Which test technique is black-box?", q.Text())
	assert.Equal(t, []string{"Equivalence partitioning", "Statement coverage", "Branch coverage", "Code review"}, q.Options())
	assert.Equal(t, 0, q.CorrectAnswer())
	assert.Equal(t, "EP derives tests from partitions of the input domain.", q.Explanation())
	assert.Equal(t, "Think of input domains.", q.Hint())
	assert.Equal(t, "Test Design Techniques", q.Category())
	assert.Equal(t, DifficultyMaster, q.Difficulty())
	assert.Equal(t, "Classifies techniques.", q.Reasoning())
	assert.Equal(t, 8, q.ComplexityScore())
	assert.Equal(t, "syllabus.pdf", q.SourcePDF(), "source must come from the caller")
}

func TestSanitize_DropRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c CandidateQuestion)
	}{
		{"three options", func(c CandidateQuestion) { c["options"] = []any{"a", "b", "c"} }},
		{"options not a list", func(c CandidateQuestion) { c["options"] = "a,b,c,d" }},
		{"missing options", func(c CandidateQuestion) { delete(c, "options") }},
		{"question not text", func(c CandidateQuestion) { c["question"] = float64(42) }},
		{"missing question", func(c CandidateQuestion) { delete(c, "question") }},
		{"blank question", func(c CandidateQuestion) { c["question"] = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(c)
			assert.Empty(t, Sanitize([]CandidateQuestion{c}, "doc.pdf"))
		})
	}

	assert.Empty(t, Sanitize([]CandidateQuestion{nil}, "doc.pdf"))
}

func TestSanitize_TruncatesOptions(t *testing.T) {
	c := validCandidate()
	c["options"] = []any{"a", "b", "c", "d", "e"}

	got := Sanitize([]CandidateQuestion{c}, "doc.pdf")

	require.Len(t, got, 1)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got[0].Options())
}

func TestSanitize_StringifiesOptions(t *testing.T) {
	c := validCandidate()
	c["options"] = []any{float64(1), true, nil, map[string]any{"k": "v"}}

	got := Sanitize([]CandidateQuestion{c}, "doc.pdf")

	require.Len(t, got, 1)
	assert.Equal(t, []string{"1", "true", "null", `{"k":"v"}`}, got[0].Options())
}

func TestSanitize_CorrectAnswerClamp(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"too high", float64(99), 3},
		{"negative", float64(-5), 0},
		{"NaN", math.NaN(), 0},
		{"absent", nil, 0},
		{"numeric string", "2", 2},
		{"non numeric string", "B", 0},
		{"fraction", 2.7, 2},
		{"json number", json.Number("1"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			if tt.value == nil {
				delete(c, "correct_answer")
			} else {
				c["correct_answer"] = tt.value
			}
			got := Sanitize([]CandidateQuestion{c}, "doc.pdf")
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].CorrectAnswer())
		})
	}
}

func TestSanitize_Defaults(t *testing.T) {
	c := CandidateQuestion{
		"question": "What is a test basis?",
		"options":  []any{"a", "b", "c", "d"},
		"category": "",
		"hint":     false,
	}

	got := Sanitize([]CandidateQuestion{c}, "doc.pdf")

	require.Len(t, got, 1)
	q := got[0]
	assert.Equal(t, "", q.Explanation())
	assert.Equal(t, "", q.Hint())
	assert.Equal(t, "", q.Reasoning())
	assert.Equal(t, DefaultCategory, q.Category())
	assert.Equal(t, DifficultyExpert, q.Difficulty())
	assert.Equal(t, DefaultComplexity, q.ComplexityScore())
}

func TestSanitize_Difficulty(t *testing.T) {
	tests := []struct {
		value any
		want  Difficulty
	}{
		{"Expert", DifficultyExpert},
		{"Master", DifficultyMaster},
		{"Champion", DifficultyChampion},
		{"Hard", DifficultyChampion},
		{"Medium", DifficultyMaster},
		{"champion", DifficultyExpert},
		{"Legendary", DifficultyExpert},
		{float64(3), DifficultyExpert},
	}

	for _, tt := range tests {
		c := validCandidate()
		c["difficulty"] = tt.value
		got := Sanitize([]CandidateQuestion{c}, "doc.pdf")
		require.Len(t, got, 1)
		assert.Equal(t, tt.want, got[0].Difficulty(), "difficulty %v", tt.value)
	}
}

func TestSanitize_ComplexityScore(t *testing.T) {
	tests := []struct {
		value any
		want  int
	}{
		{float64(1), 6},
		{float64(12), 10},
		{float64(9), 9},
		{float64(0), 7},
		{"high", 7},
		{"8", 8},
		{float64(0.5), 6},
		{"0.5", 6},
		{float64(-0.4), 6},
	}

	for _, tt := range tests {
		c := validCandidate()
		c["complexity_score"] = tt.value
		got := Sanitize([]CandidateQuestion{c}, "doc.pdf")
		require.Len(t, got, 1)
		assert.Equal(t, tt.want, got[0].ComplexityScore(), "complexity %v", tt.value)
	}
}

func TestSanitize_KeepsOrderAndDropsOnlyInvalid(t *testing.T) {
	bad := validCandidate()
	bad["options"] = []any{"a"}
	second := validCandidate()
	second["question"] = "Second?"

	got := Sanitize([]CandidateQuestion{validCandidate(), bad, second}, "doc.pdf")

	require.Len(t, got, 2)
	assert.Equal(t, "Second?", got[1].Text())
}

func TestQuestion_MarshalJSON(t *testing.T) {
	q, ok := SanitizeOne(validCandidate(), "doc.pdf")
	require.True(t, ok)

	raw, err := json.Marshal(q)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Which test technique is black-box?", decoded["question"])
	assert.Equal(t, "Master", decoded["difficulty"])
	assert.Equal(t, "doc.pdf", decoded["source_pdf"])
	assert.Len(t, decoded["options"], 4)
}

func TestQuestion_OptionsIsACopy(t *testing.T) {
	q, ok := SanitizeOne(validCandidate(), "doc.pdf")
	require.True(t, ok)

	opts := q.Options()
	opts[0] = "changed"

	assert.Equal(t, "Equivalence partitioning", q.Options()[0])
}

func TestDifficulty_StorageLabel(t *testing.T) {
	assert.Equal(t, "Easy", DifficultyExpert.StorageLabel())
	assert.Equal(t, "Medium", DifficultyMaster.StorageLabel())
	assert.Equal(t, "Hard", DifficultyChampion.StorageLabel())
	assert.Equal(t, "Easy", Difficulty("bogus").StorageLabel())
}
