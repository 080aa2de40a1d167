package vectorindex

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"istqb-quiz/internal/domain"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
	"github.com/tmc/langchaingo/vectorstores/qdrant"
	"go.uber.org/zap"
)

// documentAdder is the part of a langchaingo vector store the indexer needs.
type documentAdder interface {
	AddDocuments(ctx context.Context, docs []schema.Document, options ...vectorstores.Option) ([]string, error)
}

// QdrantQuestionIndexer pushes persisted questions into a Qdrant collection.
type QdrantQuestionIndexer struct {
	store  documentAdder
	logger *zap.Logger
}

// NewQdrantQuestionIndexer connects a langchaingo Qdrant store. The collection must exist.
func NewQdrantQuestionIndexer(rawURL, apiKey, collection string, embedder embeddings.Embedder, logger *zap.Logger) (*QdrantQuestionIndexer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rawURL == "" {
		return nil, fmt.Errorf("qdrant URL cannot be empty")
	}
	if collection == "" {
		return nil, fmt.Errorf("qdrant collection cannot be empty")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil for the question indexer")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid qdrant URL %q: %w", rawURL, err)
	}

	opts := []qdrant.Option{
		qdrant.WithURL(*u),
		qdrant.WithCollectionName(collection),
		qdrant.WithEmbedder(embedder),
	}
	if apiKey != "" {
		opts = append(opts, qdrant.WithAPIKey(apiKey))
	}
	store, err := qdrant.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant store: %w", err)
	}
	logger.Info("Qdrant question indexer configured", zap.String("url", u.Host), zap.String("collection", collection))
	return newQuestionIndexer(store, logger), nil
}

func newQuestionIndexer(store documentAdder, logger *zap.Logger) *QdrantQuestionIndexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QdrantQuestionIndexer{store: store, logger: logger}
}

// IndexQuestions implements domain.QuestionIndexer.
func (i *QdrantQuestionIndexer) IndexQuestions(ctx context.Context, sourceID string, questions []domain.Question) error {
	if len(questions) == 0 {
		return nil
	}
	docs := make([]schema.Document, 0, len(questions))
	for _, q := range questions {
		docs = append(docs, schema.Document{
			PageContent: pageContent(q),
			Metadata: map[string]any{
				"source_pdf":       sourceID,
				"difficulty":       string(q.Difficulty()),
				"category":         q.Category(),
				"complexity_score": q.ComplexityScore(),
				"question":         q.Text(),
			},
		})
	}
	ids, err := i.store.AddDocuments(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to index %d questions for %s: %w", len(docs), sourceID, err)
	}
	i.logger.Info("Indexed questions", zap.String("source_pdf", sourceID), zap.Int("count", len(ids)))
	return nil
}

// pageContent is the text embedded for a question: the stem followed by its options.
func pageContent(q domain.Question) string {
	var b strings.Builder
	b.WriteString(q.Text())
	for _, opt := range q.Options() {
		b.WriteString("\n- ")
		b.WriteString(opt)
	}
	return b.String()
}

var _ domain.QuestionIndexer = (*QdrantQuestionIndexer)(nil)
