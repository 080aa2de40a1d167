package embedding

import (
	"fmt"

	"istqb-quiz/internal/config"
	"istqb-quiz/internal/domain"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// NewOpenAIEmbedder creates a langchaingo embedder backed by the OpenAI embeddings API.
func NewOpenAIEmbedder(apiKey, model, baseURL string) (embeddings.Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	opts := []openai.Option{openai.WithToken(apiKey), openai.WithEmbeddingModel(model)}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI client for embedder: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

// NewOllamaEmbedder creates a langchaingo embedder backed by an Ollama server.
func NewOllamaEmbedder(serverURL, model string) (embeddings.Embedder, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	llm, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Ollama client for embedder: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

// NewFromConfig returns the configured cached embedder, or nil when embedding.source
// is empty.
func NewFromConfig(cfg *config.Config, cache domain.Cache, logger *zap.Logger) (*CachedEmbedder, error) {
	var (
		embedder embeddings.Embedder
		model    string
		err      error
	)
	switch cfg.Embedding.Source {
	case "":
		return nil, nil
	case "openai":
		model = cfg.Embedding.OpenAIModel
		embedder, err = NewOpenAIEmbedder(cfg.LLM.OpenAI.APIKey, model, cfg.LLM.OpenAI.BaseURL)
	case "ollama":
		model = cfg.Embedding.OllamaModel
		embedder, err = NewOllamaEmbedder(cfg.LLM.Ollama.BaseURL, model)
	default:
		return nil, fmt.Errorf("unsupported embedding.source %q", cfg.Embedding.Source)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("Embedding service configured", zap.String("source", cfg.Embedding.Source), zap.String("model", model))
	return NewCachedEmbedder(embedder, model, cache, cfg.Embedding.CacheTTL, logger)
}
