package service

import (
	"context"

	"istqb-quiz/internal/config"
	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/util"

	"go.uber.org/zap"
)

const (
	defaultExistingLimit = 5000
	// semanticCandidateLimit bounds how many stored questions are embedded per call.
	semanticCandidateLimit = 500
)

// DedupGate drops questions that are already stored for a source document.
type DedupGate struct {
	repo      domain.QuestionRepository
	embedder  domain.EmbeddingService
	limit     int
	threshold float64
	logger    *zap.Logger
}

// NewDedupGate enables the semantic check only when embedder is set and the
// similarity threshold is positive.
func NewDedupGate(repo domain.QuestionRepository, embedder domain.EmbeddingService, cfg config.DedupConfig, logger *zap.Logger) *DedupGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := cfg.ExistingLimit
	if limit <= 0 {
		limit = defaultExistingLimit
	}
	return &DedupGate{
		repo:      repo,
		embedder:  embedder,
		limit:     limit,
		threshold: cfg.SimilarityThreshold,
		logger:    logger,
	}
}

// FilterNew keeps questions whose text is not stored yet and not repeated earlier in
// the batch. Matching is exact and case-sensitive. A failed lookup is treated as an
// empty store.
func (g *DedupGate) FilterNew(ctx context.Context, questions []domain.Question, sourceID string) []domain.Question {
	existing, err := g.repo.ExistingQuestionTexts(ctx, sourceID, g.limit)
	if err != nil {
		g.logger.Warn("Failed to fetch existing questions, treating as none",
			zap.String("source_pdf", sourceID),
			zap.Error(err),
		)
		existing = map[string]struct{}{}
	}

	seen := make(map[string]struct{}, len(questions))
	fresh := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if _, dup := existing[q.Text()]; dup {
			continue
		}
		if _, dup := seen[q.Text()]; dup {
			continue
		}
		seen[q.Text()] = struct{}{}
		fresh = append(fresh, q)
	}

	if g.embedder != nil && g.threshold > 0 && len(fresh) > 0 && len(existing) > 0 {
		fresh = g.filterSimilar(ctx, fresh, existing, sourceID)
	}
	return fresh
}

// filterSimilar drops questions whose embedding is at least threshold similar to a
// stored question. Any embedding failure returns the input untouched.
func (g *DedupGate) filterSimilar(ctx context.Context, questions []domain.Question, existing map[string]struct{}, sourceID string) []domain.Question {
	stored := make([][]float32, 0, min(len(existing), semanticCandidateLimit))
	for text := range existing {
		if len(stored) == semanticCandidateLimit {
			break
		}
		vec, err := g.embedder.Generate(ctx, text)
		if err != nil {
			g.logger.Warn("Embedding failed, skipping similarity check", zap.String("source_pdf", sourceID), zap.Error(err))
			return questions
		}
		stored = append(stored, vec)
	}

	kept := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		vec, err := g.embedder.Generate(ctx, q.Text())
		if err != nil {
			g.logger.Warn("Embedding failed, skipping similarity check", zap.String("source_pdf", sourceID), zap.Error(err))
			return questions
		}
		similarity, err := util.MaxSimilarity(vec, stored)
		if err != nil {
			g.logger.Warn("Similarity check failed", zap.String("source_pdf", sourceID), zap.Error(err))
			return questions
		}
		if similarity >= g.threshold {
			g.logger.Debug("Dropped near-duplicate question",
				zap.String("source_pdf", sourceID),
				zap.Float64("similarity", similarity),
				zap.Float64("threshold", g.threshold),
			)
			continue
		}
		kept = append(kept, q)
	}
	return kept
}
