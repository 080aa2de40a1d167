package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/util"

	"go.uber.org/zap"
)

const (
	DefaultExamQuestions = 60
	MaxExamQuestions     = 200
)

// examService implements domain.ExamService.
type examService struct {
	questions domain.QuestionRepository
	exams     domain.ExamRepository
	logger    *zap.Logger
	now       func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewExamService(questions domain.QuestionRepository, exams domain.ExamRepository, logger *zap.Logger) domain.ExamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &examService{
		questions: questions,
		exams:     exams,
		logger:    logger,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartExam samples questionCount questions (60 when zero) in random order.
func (s *examService) StartExam(ctx context.Context, questionCount int) (*domain.ExamSession, []domain.StoredQuestion, error) {
	if questionCount == 0 {
		questionCount = DefaultExamQuestions
	}
	if questionCount < 1 || questionCount > MaxExamQuestions {
		return nil, nil, domain.NewError(domain.ErrValidation, "invalid question_count",
			domain.NewOutOfRangeError("question_count", questionCount, 1, MaxExamQuestions))
	}

	questions, err := s.questions.Random(ctx, questionCount)
	if err != nil {
		return nil, nil, err
	}
	if len(questions) == 0 {
		return nil, nil, domain.NewNotFoundError("no questions available yet")
	}

	s.rngMu.Lock()
	s.rng.Shuffle(len(questions), func(i, j int) { questions[i], questions[j] = questions[j], questions[i] })
	s.rngMu.Unlock()

	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	session := domain.NewExamSession(util.NewULID(), ids, s.now())
	if err := s.exams.CreateSession(ctx, session); err != nil {
		return nil, nil, err
	}
	s.logger.Info("Exam started", zap.String("exam_id", session.ID), zap.Int("questions", len(ids)))
	return session, questions, nil
}

func (s *examService) GetExam(ctx context.Context, id string) (*domain.ExamSession, error) {
	return s.exams.GetSession(ctx, id)
}

func (s *examService) SubmitAnswer(ctx context.Context, id string, questionIndex, answer int) (*domain.ExamSession, error) {
	session, err := s.exams.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.SetAnswer(questionIndex, answer); err != nil {
		return nil, err
	}
	if err := s.exams.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// FinishExam grades the session and folds the result into the global statistics.
func (s *examService) FinishExam(ctx context.Context, id string, timeSpent int) (*domain.ExamSession, error) {
	if timeSpent < 0 {
		return nil, domain.NewInvalidInputError("time_spent cannot be negative")
	}
	session, err := s.exams.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, domain.NewExamCompletedError(id)
	}

	stored, err := s.questions.GetByIDs(ctx, session.QuestionIDs)
	if err != nil {
		return nil, err
	}
	correct := make(map[string]int, len(stored))
	for _, q := range stored {
		correct[q.ID] = q.CorrectAnswer()
	}

	now := s.now()
	session.Score = session.Grade(correct)
	session.TimeSpent = timeSpent
	session.Completed = true
	session.CompletedAt = &now
	if err := s.exams.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	stats, err := s.exams.GetStats(ctx)
	if err != nil {
		s.logger.Error("Failed to load stats, exam result not recorded", zap.String("exam_id", id), zap.Error(err))
		return session, nil
	}
	stats.RecordExam(session.Score, len(session.QuestionIDs), timeSpent, now)
	if err := s.exams.SaveStats(ctx, stats); err != nil {
		s.logger.Error("Failed to save stats", zap.String("exam_id", id), zap.Error(err))
	}

	s.logger.Info("Exam finished",
		zap.String("exam_id", id),
		zap.Int("score", session.Score),
		zap.Int("questions", len(session.QuestionIDs)),
	)
	return session, nil
}

func (s *examService) GetStats(ctx context.Context) (*domain.UserStats, error) {
	return s.exams.GetStats(ctx)
}
