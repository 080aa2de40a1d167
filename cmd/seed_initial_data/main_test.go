package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"istqb-quiz/cmd/seed_initial_data/seedmodels"
	"istqb-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type passThroughGate struct {
	drop map[string]bool
}

func (g passThroughGate) FilterNew(_ context.Context, questions []domain.Question, _ string) []domain.Question {
	out := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if !g.drop[q.Text()] {
			out = append(out, q)
		}
	}
	return out
}

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) InsertMany(ctx context.Context, questions []domain.Question) error {
	return m.Called(ctx, questions).Error(0)
}

func candidate(text string) domain.CandidateQuestion {
	return domain.CandidateQuestion{
		"question":       text,
		"options":        []any{"a", "b", "c", "d"},
		"correct_answer": float64(2),
		"difficulty":     "Master",
	}
}

func TestLoadSeedFile(t *testing.T) {
	sets, err := loadSeedFile(filepath.Join("..", "..", defaultSeedFile))
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "seed_ctal_ta_v4.pdf", sets[0].SourcePDF)

	questions := domain.Sanitize(sets[0].Questions, sets[0].SourcePDF)
	require.Len(t, questions, 3)
	assert.Equal(t, domain.DifficultyChampion, questions[2].Difficulty())

	_, err = loadSeedFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = loadSeedFile(bad)
	assert.Error(t, err)
}

func TestSeedQuestions(t *testing.T) {
	ctx := context.Background()
	sets := []seedmodels.SeedSet{
		{SourcePDF: "a.pdf", Questions: []domain.CandidateQuestion{candidate("Q1"), candidate("Q2"), {"question": "no options"}}},
		{SourcePDF: "", Questions: []domain.CandidateQuestion{candidate("orphan")}},
		{SourcePDF: "b.pdf", Questions: []domain.CandidateQuestion{candidate("known")}},
	}
	gate := passThroughGate{drop: map[string]bool{"known": true}}
	repo := new(MockQuestionRepository)
	repo.On("InsertMany", ctx, mock.MatchedBy(func(qs []domain.Question) bool {
		return len(qs) == 2 && qs[0].SourcePDF() == "a.pdf" && qs[1].Difficulty() == domain.DifficultyMaster
	})).Return(nil).Once()

	inserted, err := seedQuestions(ctx, sets, gate, repo, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	repo.AssertExpectations(t)
}

func TestSeedQuestions_DryRun(t *testing.T) {
	sets := []seedmodels.SeedSet{{SourcePDF: "a.pdf", Questions: []domain.CandidateQuestion{candidate("Q1")}}}

	inserted, err := seedQuestions(context.Background(), sets, passThroughGate{}, nil, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
}

func TestSeedQuestions_InsertError(t *testing.T) {
	ctx := context.Background()
	sets := []seedmodels.SeedSet{{SourcePDF: "a.pdf", Questions: []domain.CandidateQuestion{candidate("Q1")}}}
	repo := new(MockQuestionRepository)
	repo.On("InsertMany", ctx, mock.Anything).Return(errors.New("connection reset")).Once()

	_, err := seedQuestions(ctx, sets, passThroughGate{}, repo, zap.NewNop())

	assert.ErrorContains(t, err, "connection reset")
}
