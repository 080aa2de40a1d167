package service

import (
	"context"
	"io"
	"sync"
	"time"

	"istqb-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) ExistingQuestionTexts(ctx context.Context, sourceID string, limit int) (map[string]struct{}, error) {
	args := m.Called(ctx, sourceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockQuestionRepository) InsertMany(ctx context.Context, questions []domain.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.StoredQuestion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredQuestion), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.StoredQuestion, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredQuestion), args.Error(1)
}

func (m *MockQuestionRepository) Random(ctx context.Context, limit int) ([]domain.StoredQuestion, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredQuestion), args.Error(1)
}

func (m *MockQuestionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// --- MockExamRepository ---
type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) CreateSession(ctx context.Context, session *domain.ExamSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockExamRepository) GetSession(ctx context.Context, id string) (*domain.ExamSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExamSession), args.Error(1)
}

func (m *MockExamRepository) UpdateSession(ctx context.Context, session *domain.ExamSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockExamRepository) GetStats(ctx context.Context) (*domain.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

func (m *MockExamRepository) SaveStats(ctx context.Context, stats *domain.UserStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

// --- MockDocumentStore ---
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

// --- MockTextExtractor ---
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, raw []byte) (string, error) {
	args := m.Called(ctx, raw)
	return args.String(0), args.Error(1)
}

// --- MockQuestionGenerator ---
type MockQuestionGenerator struct {
	mock.Mock
	name string
}

func (m *MockQuestionGenerator) Name() string { return m.name }

func (m *MockQuestionGenerator) Generate(ctx context.Context, text domain.NormalizedText, sourceID string, target domain.DifficultyTarget) ([]domain.CandidateQuestion, error) {
	args := m.Called(ctx, text, sourceID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateQuestion), args.Error(1)
}

// --- MockSourceLocker ---
type MockSourceLocker struct {
	mock.Mock
}

func (m *MockSourceLocker) Acquire(ctx context.Context, sourceID string, ttl time.Duration) (func(), bool, error) {
	args := m.Called(ctx, sourceID, ttl)
	unlock, _ := args.Get(0).(func())
	return unlock, args.Bool(1), args.Error(2)
}

// --- MockEmbeddingService ---
type MockEmbeddingService struct {
	mock.Mock
}

func (m *MockEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// --- MockQuestionIndexer ---
type MockQuestionIndexer struct {
	mock.Mock
}

func (m *MockQuestionIndexer) IndexQuestions(ctx context.Context, sourceID string, questions []domain.Question) error {
	args := m.Called(ctx, sourceID, questions)
	return args.Error(0)
}

// memoryQuestionRepository is a small in-memory store for pipeline scenarios.
type memoryQuestionRepository struct {
	mu        sync.Mutex
	questions []domain.Question
	inserts   int
}

func (r *memoryQuestionRepository) ExistingQuestionTexts(_ context.Context, sourceID string, limit int) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]struct{})
	for _, q := range r.questions {
		if q.SourcePDF() == sourceID && len(out) < limit {
			out[q.Text()] = struct{}{}
		}
	}
	return out, nil
}

func (r *memoryQuestionRepository) InsertMany(_ context.Context, questions []domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions = append(r.questions, questions...)
	r.inserts++
	return nil
}

func (r *memoryQuestionRepository) List(context.Context, domain.QuestionFilter) ([]domain.StoredQuestion, error) {
	return nil, nil
}

func (r *memoryQuestionRepository) GetByIDs(context.Context, []string) ([]domain.StoredQuestion, error) {
	return nil, nil
}

func (r *memoryQuestionRepository) Random(context.Context, int) ([]domain.StoredQuestion, error) {
	return nil, nil
}

func (r *memoryQuestionRepository) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.questions), nil
}

var (
	_ domain.QuestionRepository = (*MockQuestionRepository)(nil)
	_ domain.QuestionRepository = (*memoryQuestionRepository)(nil)
	_ domain.ExamRepository     = (*MockExamRepository)(nil)
	_ domain.DocumentStore      = (*MockDocumentStore)(nil)
	_ domain.TextExtractor      = (*MockTextExtractor)(nil)
	_ domain.QuestionGenerator  = (*MockQuestionGenerator)(nil)
	_ domain.SourceLocker       = (*MockSourceLocker)(nil)
	_ domain.EmbeddingService   = (*MockEmbeddingService)(nil)
	_ domain.QuestionIndexer    = (*MockQuestionIndexer)(nil)
)
