package embedding

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"istqb-quiz/internal/cache"
	"istqb-quiz/internal/domain"

	"github.com/tmc/langchaingo/embeddings"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultEmbeddingTTL = 168 * time.Hour

// CachedEmbedder wraps a langchaingo embedder with a Redis-backed vector cache.
// Concurrent requests for the same text share one provider call.
type CachedEmbedder struct {
	embedder embeddings.Embedder
	model    string
	cache    domain.Cache
	ttl      time.Duration
	sfGroup  singleflight.Group
	logger   *zap.Logger
}

// NewCachedEmbedder builds a CachedEmbedder. cache may be nil to disable caching.
func NewCachedEmbedder(embedder embeddings.Embedder, model string, cache domain.Cache, ttl time.Duration, logger *zap.Logger) (*CachedEmbedder, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if model == "" {
		return nil, fmt.Errorf("embedding model name cannot be empty")
	}
	if ttl <= 0 {
		ttl = defaultEmbeddingTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedEmbedder{
		embedder: embedder,
		model:    model,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}, nil
}

// Generate implements domain.EmbeddingService.
func (s *CachedEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("input text cannot be empty for embedding")
	}
	cacheKey := cache.EmbeddingKey(s.model, text)

	if vec, ok := s.fromCache(ctx, cacheKey); ok {
		return vec, nil
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		raw, err := s.embedder.EmbedQuery(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding with %s: %w", s.model, err)
		}
		if len(raw) == 0 {
			return nil, fmt.Errorf("received empty embedding from %s", s.model)
		}
		vec := make([]float32, len(raw))
		for i, v := range raw {
			vec[i] = float32(v)
		}
		s.toCache(ctx, cacheKey, vec)
		return vec, nil
	})
	if err != nil {
		return nil, err
	}
	vec, ok := res.([]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for embedding: %T", res)
	}
	return vec, nil
}

// EmbedQuery implements embeddings.Embedder so the cache can back a vector store.
func (s *CachedEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return s.Generate(ctx, text)
}

// EmbedDocuments implements embeddings.Embedder.
func (s *CachedEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := s.Generate(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

func (s *CachedEmbedder) fromCache(ctx context.Context, key string) ([]float32, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("Embedding cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var vec []float32
	if err := gob.NewDecoder(bytes.NewReader([]byte(data))).Decode(&vec); err != nil {
		s.logger.Warn("Discarding undecodable cached embedding", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return vec, true
}

func (s *CachedEmbedder) toCache(ctx context.Context, key string, vec []float32) {
	if s.cache == nil {
		return
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(vec); err != nil {
		s.logger.Warn("Failed to encode embedding for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, buf.String(), s.ttl); err != nil {
		s.logger.Warn("Failed to cache embedding", zap.String("key", key), zap.Error(err))
	}
}

var (
	_ domain.EmbeddingService = (*CachedEmbedder)(nil)
	_ embeddings.Embedder     = (*CachedEmbedder)(nil)
)
