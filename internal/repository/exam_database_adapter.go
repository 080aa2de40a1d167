package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const examColumns = `id "id", question_ids "question_ids", answers "answers", score "score",
	time_spent "time_spent", total_time "total_time", completed "completed",
	started_at "started_at", completed_at "completed_at"`

const statsColumns = `id "id", total_questions "total_questions", correct_answers "correct_answers",
	total_points "total_points", current_streak "current_streak", best_streak "best_streak",
	average_time "average_time", exams_taken "exams_taken", last_exam_date "last_exam_date"`

// ExamDatabaseAdapter implements domain.ExamRepository using sqlx.DB
type ExamDatabaseAdapter struct {
	db *sqlx.DB
}

func NewExamDatabaseAdapter(db *sqlx.DB) *ExamDatabaseAdapter {
	return &ExamDatabaseAdapter{db: db}
}

func (a *ExamDatabaseAdapter) CreateSession(ctx context.Context, session *domain.ExamSession) error {
	m := toModelExam(session)
	query := a.db.Rebind(`INSERT INTO exam_sessions (
		id, question_ids, answers, score, time_spent, total_time, completed, started_at, completed_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := a.db.ExecContext(ctx, query,
		m.ID, m.QuestionIDs, m.Answers, m.Score, m.TimeSpent, m.TotalTime, m.Completed, m.StartedAt, m.CompletedAt,
	); err != nil {
		return domain.NewStoreError("create exam session", err)
	}
	return nil
}

func (a *ExamDatabaseAdapter) GetSession(ctx context.Context, id string) (*domain.ExamSession, error) {
	var m models.ExamSession
	query := a.db.Rebind(`SELECT ` + examColumns + ` FROM exam_sessions WHERE id = ?`)
	err := a.db.GetContext(ctx, &m, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError(fmt.Sprintf("exam session %s not found", id))
	}
	if err != nil {
		return nil, domain.NewStoreError("get exam session", err)
	}
	return toDomainExam(&m), nil
}

func (a *ExamDatabaseAdapter) UpdateSession(ctx context.Context, session *domain.ExamSession) error {
	m := toModelExam(session)
	query := a.db.Rebind(`UPDATE exam_sessions
	SET answers = ?, score = ?, time_spent = ?, completed = ?, completed_at = ?
	WHERE id = ?`)
	res, err := a.db.ExecContext(ctx, query, m.Answers, m.Score, m.TimeSpent, m.Completed, m.CompletedAt, m.ID)
	if err != nil {
		return domain.NewStoreError("update exam session", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("exam session %s not found", session.ID))
	}
	return nil
}

// GetStats returns the global statistics, zeroed when nothing was recorded yet.
func (a *ExamDatabaseAdapter) GetStats(ctx context.Context) (*domain.UserStats, error) {
	var m models.UserStats
	query := a.db.Rebind(`SELECT ` + statsColumns + ` FROM user_stats WHERE id = ?`)
	err := a.db.GetContext(ctx, &m, query, GlobalStatsID)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.UserStats{ID: GlobalStatsID}, nil
	}
	if err != nil {
		return nil, domain.NewStoreError("get stats", err)
	}
	return toDomainStats(&m), nil
}

// SaveStats updates the global row, inserting it on first use.
func (a *ExamDatabaseAdapter) SaveStats(ctx context.Context, stats *domain.UserStats) error {
	m := toModelStats(stats)
	update := a.db.Rebind(`UPDATE user_stats
	SET total_questions = ?, correct_answers = ?, total_points = ?, current_streak = ?,
		best_streak = ?, average_time = ?, exams_taken = ?, last_exam_date = ?
	WHERE id = ?`)
	res, err := a.db.ExecContext(ctx, update,
		m.TotalQuestions, m.CorrectAnswers, m.TotalPoints, m.CurrentStreak,
		m.BestStreak, m.AverageTime, m.ExamsTaken, m.LastExamDate, m.ID,
	)
	if err != nil {
		return domain.NewStoreError("save stats", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	insert := a.db.Rebind(`INSERT INTO user_stats (
		id, total_questions, correct_answers, total_points, current_streak,
		best_streak, average_time, exams_taken, last_exam_date
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := a.db.ExecContext(ctx, insert,
		m.ID, m.TotalQuestions, m.CorrectAnswers, m.TotalPoints, m.CurrentStreak,
		m.BestStreak, m.AverageTime, m.ExamsTaken, m.LastExamDate,
	); err != nil {
		return domain.NewStoreError("save stats", err)
	}
	return nil
}

func toModelExam(s *domain.ExamSession) models.ExamSession {
	m := models.ExamSession{
		ID:          s.ID,
		QuestionIDs: models.StringSlice(s.QuestionIDs),
		Answers:     models.IntSlice(s.Answers),
		Score:       s.Score,
		TimeSpent:   s.TimeSpent,
		TotalTime:   s.TotalTime,
		StartedAt:   s.StartedAt,
	}
	if s.Completed {
		m.Completed = 1
	}
	if s.CompletedAt != nil {
		m.CompletedAt = sql.NullTime{Time: *s.CompletedAt, Valid: true}
	}
	return m
}

func toDomainExam(m *models.ExamSession) *domain.ExamSession {
	s := &domain.ExamSession{
		ID:          m.ID,
		QuestionIDs: []string(m.QuestionIDs),
		Answers:     []int(m.Answers),
		Score:       m.Score,
		TimeSpent:   m.TimeSpent,
		TotalTime:   m.TotalTime,
		Completed:   m.Completed != 0,
		StartedAt:   m.StartedAt,
	}
	if m.CompletedAt.Valid {
		t := m.CompletedAt.Time
		s.CompletedAt = &t
	}
	return s
}

func toModelStats(s *domain.UserStats) models.UserStats {
	m := models.UserStats{
		ID:             GlobalStatsID,
		TotalQuestions: s.TotalQuestions,
		CorrectAnswers: s.CorrectAnswers,
		TotalPoints:    s.TotalPoints,
		CurrentStreak:  s.CurrentStreak,
		BestStreak:     s.BestStreak,
		AverageTime:    s.AverageTime,
		ExamsTaken:     s.ExamsTaken,
	}
	if s.LastExamDate != nil {
		m.LastExamDate = sql.NullTime{Time: *s.LastExamDate, Valid: true}
	}
	return m
}

func toDomainStats(m *models.UserStats) *domain.UserStats {
	s := &domain.UserStats{
		ID:             m.ID,
		TotalQuestions: m.TotalQuestions,
		CorrectAnswers: m.CorrectAnswers,
		TotalPoints:    m.TotalPoints,
		CurrentStreak:  m.CurrentStreak,
		BestStreak:     m.BestStreak,
		AverageTime:    m.AverageTime,
		ExamsTaken:     m.ExamsTaken,
	}
	if m.LastExamDate.Valid {
		t := m.LastExamDate.Time
		s.LastExamDate = &t
	}
	return s
}

var _ domain.ExamRepository = (*ExamDatabaseAdapter)(nil)
