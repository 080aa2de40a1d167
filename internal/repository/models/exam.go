package models

import (
	"database/sql"
	"time"
)

// ExamSession is a row of exam_sessions. Completed is 0 or 1 so the column works on
// both Oracle and Postgres.
type ExamSession struct {
	ID          string       `db:"id"`
	QuestionIDs StringSlice  `db:"question_ids"`
	Answers     IntSlice     `db:"answers"`
	Score       int          `db:"score"`
	TimeSpent   int          `db:"time_spent"`
	TotalTime   int          `db:"total_time"`
	Completed   int          `db:"completed"`
	StartedAt   time.Time    `db:"started_at"`
	CompletedAt sql.NullTime `db:"completed_at"`
}

type UserStats struct {
	ID             string       `db:"id"`
	TotalQuestions int          `db:"total_questions"`
	CorrectAnswers int          `db:"correct_answers"`
	TotalPoints    int          `db:"total_points"`
	CurrentStreak  int          `db:"current_streak"`
	BestStreak     int          `db:"best_streak"`
	AverageTime    int          `db:"average_time"`
	ExamsTaken     int          `db:"exams_taken"`
	LastExamDate   sql.NullTime `db:"last_exam_date"`
}
