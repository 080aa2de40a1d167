package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"istqb-quiz/internal/domain"
)

// testSetPoolSize bounds how many stored questions feed a test set build.
const testSetPoolSize = 1000

// QuestionService serves read access to the question bank.
type QuestionService interface {
	List(ctx context.Context, filter domain.QuestionFilter) ([]domain.StoredQuestion, error)
	Count(ctx context.Context) (int, error)
	TestSets(ctx context.Context, sourcePDF string) (domain.TestSets, error)
}

type questionService struct {
	repo domain.QuestionRepository

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewQuestionService(repo domain.QuestionRepository) QuestionService {
	return &questionService{repo: repo, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *questionService) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.StoredQuestion, error) {
	return s.repo.List(ctx, filter)
}

func (s *questionService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// TestSets builds the practice sets from stored questions, optionally for one source.
func (s *questionService) TestSets(ctx context.Context, sourcePDF string) (domain.TestSets, error) {
	stored, err := s.repo.List(ctx, domain.QuestionFilter{SourcePDF: sourcePDF, Limit: testSetPoolSize})
	if err != nil {
		return domain.TestSets{}, err
	}
	questions := make([]domain.Question, len(stored))
	for i, sq := range stored {
		questions[i] = sq.Question
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return domain.BuildTestSets(questions, s.rng), nil
}
