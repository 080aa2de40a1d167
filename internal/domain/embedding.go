package domain

import (
	"context"
)

// EmbeddingService defines the interface for generating text embeddings.
type EmbeddingService interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// QuestionIndexer receives questions after they were persisted, for example to push
// embeddings into a vector store. It is a best-effort side channel.
type QuestionIndexer interface {
	IndexQuestions(ctx context.Context, sourceID string, questions []Question) error
}
