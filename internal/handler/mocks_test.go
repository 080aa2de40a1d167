package handler_test

import (
	"context"
	"io"

	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) List(ctx context.Context, limit int) ([]string, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDocumentStore) Download(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentStore) Upload(ctx context.Context, id string, r io.Reader, contentType string) error {
	args := m.Called(ctx, id, r, contentType)
	return args.Error(0)
}

type MockPipelineService struct {
	mock.Mock
}

func (m *MockPipelineService) ProcessDocument(ctx context.Context, sourceID string) (domain.ProcessingOutcome, error) {
	args := m.Called(ctx, sourceID)
	return args.Get(0).(domain.ProcessingOutcome), args.Error(1)
}

func (m *MockPipelineService) ProcessContent(ctx context.Context, sourceID string, raw []byte) (*domain.GenerationResult, error) {
	args := m.Called(ctx, sourceID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationResult), args.Error(1)
}

func (m *MockPipelineService) RunPass(ctx context.Context) domain.PassReport {
	args := m.Called(ctx)
	return args.Get(0).(domain.PassReport)
}

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.StoredQuestion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredQuestion), args.Error(1)
}

func (m *MockQuestionService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionService) TestSets(ctx context.Context, sourcePDF string) (domain.TestSets, error) {
	args := m.Called(ctx, sourcePDF)
	return args.Get(0).(domain.TestSets), args.Error(1)
}

type MockExamService struct {
	mock.Mock
}

func (m *MockExamService) StartExam(ctx context.Context, questionCount int) (*domain.ExamSession, []domain.StoredQuestion, error) {
	args := m.Called(ctx, questionCount)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.ExamSession), args.Get(1).([]domain.StoredQuestion), args.Error(2)
}

func (m *MockExamService) GetExam(ctx context.Context, id string) (*domain.ExamSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExamSession), args.Error(1)
}

func (m *MockExamService) SubmitAnswer(ctx context.Context, id string, questionIndex, answer int) (*domain.ExamSession, error) {
	args := m.Called(ctx, id, questionIndex, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExamSession), args.Error(1)
}

func (m *MockExamService) FinishExam(ctx context.Context, id string, timeSpent int) (*domain.ExamSession, error) {
	args := m.Called(ctx, id, timeSpent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExamSession), args.Error(1)
}

func (m *MockExamService) GetStats(ctx context.Context) (*domain.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

var (
	_ domain.DocumentStore    = (*MockDocumentStore)(nil)
	_ domain.PipelineService  = (*MockPipelineService)(nil)
	_ service.QuestionService = (*MockQuestionService)(nil)
	_ domain.ExamService      = (*MockExamService)(nil)
)
