package domain

import (
	"context"
	"time"
)

// UnansweredAnswer marks a question the candidate has not answered yet.
const UnansweredAnswer = -1

// SecondsPerExamQuestion is the time allowance granted per exam question.
const SecondsPerExamQuestion = 60

// ExamSession is one timed practice exam.
type ExamSession struct {
	ID          string     `json:"id"`
	QuestionIDs []string   `json:"question_ids"`
	Answers     []int      `json:"answers"`
	Score       int        `json:"score"`
	TimeSpent   int        `json:"time_spent"`
	TotalTime   int        `json:"total_time"`
	Completed   bool       `json:"completed"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewExamSession prepares an unanswered session over questionIDs.
func NewExamSession(id string, questionIDs []string, startedAt time.Time) *ExamSession {
	answers := make([]int, len(questionIDs))
	for i := range answers {
		answers[i] = UnansweredAnswer
	}
	return &ExamSession{
		ID:          id,
		QuestionIDs: questionIDs,
		Answers:     answers,
		TotalTime:   len(questionIDs) * SecondsPerExamQuestion,
		StartedAt:   startedAt,
	}
}

// SetAnswer records answer for the question at index.
func (s *ExamSession) SetAnswer(index, answer int) error {
	if s.Completed {
		return NewExamCompletedError(s.ID)
	}
	if index < 0 || index >= len(s.Answers) {
		return NewInvalidInputError("question_index is out of range")
	}
	if answer < UnansweredAnswer || answer >= OptionCount {
		return NewInvalidInputError("answer must be between -1 and 3")
	}
	s.Answers[index] = answer
	return nil
}

// Grade counts answers matching the correct option. correct is keyed by question id.
func (s *ExamSession) Grade(correct map[string]int) int {
	score := 0
	for i, id := range s.QuestionIDs {
		want, ok := correct[id]
		if ok && i < len(s.Answers) && s.Answers[i] == want {
			score++
		}
	}
	return score
}

// UserStats holds the global practice statistics.
type UserStats struct {
	ID             string     `json:"id"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	TotalPoints    int        `json:"total_points"`
	CurrentStreak  int        `json:"current_streak"`
	BestStreak     int        `json:"best_streak"`
	AverageTime    int        `json:"average_time"`
	ExamsTaken     int        `json:"exams_taken"`
	LastExamDate   *time.Time `json:"last_exam_date,omitempty"`
}

// RecordExam folds a finished exam into the statistics. Average time is per question
// and is blended with the previous average.
func (u *UserStats) RecordExam(score, totalQuestions, timeSpent int, at time.Time) {
	avg := 0
	if totalQuestions > 0 {
		avg = timeSpent / totalQuestions
	}
	if u.ExamsTaken == 0 {
		u.AverageTime = avg
	} else {
		u.AverageTime = (u.AverageTime + avg) / 2
	}
	u.TotalQuestions += totalQuestions
	u.CorrectAnswers += score
	u.TotalPoints += score
	u.ExamsTaken++
	u.LastExamDate = &at
}

// ExamRepository stores exam sessions and statistics.
type ExamRepository interface {
	CreateSession(ctx context.Context, session *ExamSession) error
	GetSession(ctx context.Context, id string) (*ExamSession, error)
	UpdateSession(ctx context.Context, session *ExamSession) error
	GetStats(ctx context.Context) (*UserStats, error)
	SaveStats(ctx context.Context, stats *UserStats) error
}

// ExamService runs practice exams.
type ExamService interface {
	StartExam(ctx context.Context, questionCount int) (*ExamSession, []StoredQuestion, error)
	GetExam(ctx context.Context, id string) (*ExamSession, error)
	SubmitAnswer(ctx context.Context, id string, questionIndex, answer int) (*ExamSession, error)
	FinishExam(ctx context.Context, id string, timeSpent int) (*ExamSession, error)
	GetStats(ctx context.Context) (*UserStats, error)
}
