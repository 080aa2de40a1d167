package quizgen

import (
	"context"
	"errors"
	"fmt"

	"istqb-quiz/internal/config"
	"istqb-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	groqProvider   = "groq"
	ollamaProvider = "ollama"

	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
)

// LLMQuestionGenerator drives any langchaingo model. Groq (OpenAI compatible API)
// and Ollama are built on it.
type LLMQuestionGenerator struct {
	name   string
	model  llms.Model
	opts   Options
	logger *zap.Logger
}

func NewLLMQuestionGenerator(name string, model llms.Model, opts Options, logger *zap.Logger) (*LLMQuestionGenerator, error) {
	if model == nil {
		return nil, errors.New("llm model cannot be nil")
	}
	if name == "" {
		return nil, errors.New("llm provider name cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMQuestionGenerator{name: name, model: model, opts: opts.withDefaults(), logger: logger}, nil
}

// NewGroqQuestionGenerator fails when no API key is configured.
func NewGroqQuestionGenerator(cfg config.ProviderConfig, opts Options, logger *zap.Logger) (*LLMQuestionGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("groq API key cannot be empty")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create groq client: %w", err)
	}
	return NewLLMQuestionGenerator(groqProvider, model, opts, logger)
}

// NewOllamaQuestionGenerator fails when no server URL is configured.
func NewOllamaQuestionGenerator(cfg config.ProviderConfig, opts Options, logger *zap.Logger) (*LLMQuestionGenerator, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("ollama server URL cannot be empty")
	}
	model, err := ollama.New(ollama.WithServerURL(cfg.BaseURL), ollama.WithModel(cfg.Model))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return NewLLMQuestionGenerator(ollamaProvider, model, opts, logger)
}

func (g *LLMQuestionGenerator) Name() string { return g.name }

func (g *LLMQuestionGenerator) Generate(ctx context.Context, text domain.NormalizedText, sourceID string, target domain.DifficultyTarget) ([]domain.CandidateQuestion, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, BuildPrompt(text, target, g.opts.ExcerptChars)),
	}
	resp, err := g.model.GenerateContent(callCtx, messages,
		llms.WithTemperature(g.opts.Temperature),
		llms.WithMaxTokens(g.opts.MaxTokens),
	)
	if err != nil {
		return nil, domain.NewGenerationError(g.name, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		g.logger.Warn("llm returned no choices", zap.String("provider", g.name), zap.String("source_pdf", sourceID))
		return nil, nil
	}
	return domain.ExtractJSONArray(resp.Choices[0].Content), nil
}

var _ domain.QuestionGenerator = (*LLMQuestionGenerator)(nil)
