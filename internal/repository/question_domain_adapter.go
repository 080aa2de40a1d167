package repository

import (
	"database/sql"
	"time"

	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/repository/models"
)

// textColumn always binds a value. The Postgres columns are NOT NULL with a '' default,
// and Oracle stores '' as NULL on its own.
func textColumn(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func toModelQuestion(q domain.Question, id string, createdAt time.Time) models.Question {
	return models.Question{
		ID:              id,
		Question:        q.Text(),
		Options:         models.StringSlice(q.Options()),
		CorrectAnswer:   q.CorrectAnswer(),
		Explanation:     textColumn(q.Explanation()),
		Hint:            textColumn(q.Hint()),
		Category:        q.Category(),
		Difficulty:      q.Difficulty().StorageLabel(),
		Reasoning:       textColumn(q.Reasoning()),
		ComplexityScore: q.ComplexityScore(),
		SourcePDF:       q.SourcePDF(),
		CreatedAt:       createdAt,
	}
}

// toDomainQuestion re-validates a row. Rows that no longer satisfy the question
// invariants (for example hand-edited options) are dropped.
func toDomainQuestion(m *models.Question) (domain.StoredQuestion, bool) {
	options := make([]any, len(m.Options))
	for i, o := range m.Options {
		options[i] = o
	}
	q, ok := domain.SanitizeOne(domain.CandidateQuestion{
		"question":         m.Question,
		"options":          options,
		"correct_answer":   m.CorrectAnswer,
		"explanation":      m.Explanation.String,
		"hint":             m.Hint.String,
		"category":         m.Category,
		"difficulty":       m.Difficulty,
		"reasoning":        m.Reasoning.String,
		"complexity_score": m.ComplexityScore,
	}, m.SourcePDF)
	if !ok {
		return domain.StoredQuestion{}, false
	}
	return domain.StoredQuestion{ID: m.ID, CreatedAt: m.CreatedAt, Question: q}, true
}
