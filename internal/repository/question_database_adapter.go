package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/repository/models"
	"istqb-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id "id", question "question", options "options", correct_answer "correct_answer",
	explanation "explanation", hint "hint", category "category", difficulty "difficulty",
	reasoning "reasoning", complexity_score "complexity_score", source_pdf "source_pdf",
	created_at "created_at"`

const insertQuestionSQL = `INSERT INTO questions (
	id, question, options, correct_answer, explanation, hint, category,
	difficulty, reasoning, complexity_score, source_pdf, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewQuestionDatabaseAdapter(db *sqlx.DB) *QuestionDatabaseAdapter {
	return &QuestionDatabaseAdapter{db: db, now: time.Now}
}

// ExistingQuestionTexts returns the newest limit question texts stored for sourceID.
func (a *QuestionDatabaseAdapter) ExistingQuestionTexts(ctx context.Context, sourceID string, limit int) (map[string]struct{}, error) {
	query := a.db.Rebind(`SELECT question "question" FROM questions
	WHERE source_pdf = ?
	ORDER BY created_at DESC
	FETCH FIRST ? ROWS ONLY`)

	var texts []string
	if err := a.db.SelectContext(ctx, &texts, query, sourceID, limit); err != nil {
		return nil, domain.NewStoreError("fetch existing questions", err)
	}
	out := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		out[t] = struct{}{}
	}
	return out, nil
}

// InsertMany stores questions in one transaction. Either every row is written or none.
func (a *QuestionDatabaseAdapter) InsertMany(ctx context.Context, questions []domain.Question) error {
	if len(questions) == 0 {
		return nil
	}

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.NewStoreError("begin insert questions", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(insertQuestionSQL))
	if err != nil {
		return domain.NewStoreError("prepare insert questions", err)
	}
	defer stmt.Close()

	now := a.now()
	for _, q := range questions {
		m := toModelQuestion(q, util.NewULID(), now)
		if _, err := stmt.ExecContext(ctx,
			m.ID, m.Question, m.Options, m.CorrectAnswer, m.Explanation, m.Hint, m.Category,
			m.Difficulty, m.Reasoning, m.ComplexityScore, m.SourcePDF, m.CreatedAt,
		); err != nil {
			return domain.NewStoreError("insert question", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStoreError("commit insert questions", err)
	}
	return nil
}

// List returns questions newest first.
func (a *QuestionDatabaseAdapter) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.StoredQuestion, error) {
	var (
		where []string
		args  []any
	)
	if filter.SourcePDF != "" {
		where = append(where, "source_pdf = ?")
		args = append(args, filter.SourcePDF)
	}
	if filter.Difficulty != "" {
		where = append(where, "difficulty = ?")
		args = append(args, filter.Difficulty.StorageLabel())
	}

	var b strings.Builder
	b.WriteString("SELECT " + questionColumns + " FROM questions")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC FETCH FIRST ? ROWS ONLY")
	args = append(args, clampLimit(filter.Limit))

	return a.selectQuestions(ctx, "list questions", a.db.Rebind(b.String()), args...)
}

// GetByIDs returns the rows for ids in no particular order. Unknown ids are ignored.
func (a *QuestionDatabaseAdapter) GetByIDs(ctx context.Context, ids []string) ([]domain.StoredQuestion, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT "+questionColumns+" FROM questions WHERE id IN (?)", ids)
	if err != nil {
		return nil, domain.NewStoreError("build question lookup", err)
	}
	return a.selectQuestions(ctx, "get questions", a.db.Rebind(query), args...)
}

// Random samples up to limit questions.
func (a *QuestionDatabaseAdapter) Random(ctx context.Context, limit int) ([]domain.StoredQuestion, error) {
	query := fmt.Sprintf("SELECT %s FROM questions ORDER BY %s FETCH FIRST ? ROWS ONLY", questionColumns, randomOrder(a.db))
	return a.selectQuestions(ctx, "sample questions", a.db.Rebind(query), clampLimit(limit))
}

func (a *QuestionDatabaseAdapter) Count(ctx context.Context) (int, error) {
	var n int
	if err := a.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM questions`); err != nil {
		return 0, domain.NewStoreError("count questions", err)
	}
	return n, nil
}

func (a *QuestionDatabaseAdapter) selectQuestions(ctx context.Context, op, query string, args ...any) ([]domain.StoredQuestion, error) {
	var rows []models.Question
	if err := a.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	out := make([]domain.StoredQuestion, 0, len(rows))
	for i := range rows {
		if sq, ok := toDomainQuestion(&rows[i]); ok {
			out = append(out, sq)
		}
	}
	return out, nil
}

var _ domain.QuestionRepository = (*QuestionDatabaseAdapter)(nil)
