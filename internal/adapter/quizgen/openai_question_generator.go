package quizgen

import (
	"context"
	"errors"

	"istqb-quiz/internal/config"
	"istqb-quiz/internal/domain"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const openAIProvider = "openai"

// OpenAIQuestionGenerator asks an OpenAI chat model for questions.
type OpenAIQuestionGenerator struct {
	client *openai.Client
	model  string
	opts   Options
	logger *zap.Logger
}

// NewOpenAIQuestionGenerator fails when no API key is configured.
func NewOpenAIQuestionGenerator(cfg config.ProviderConfig, opts Options, logger *zap.Logger) (*OpenAIQuestionGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key cannot be empty")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIQuestionGenerator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		opts:   opts.withDefaults(),
		logger: logger,
	}, nil
}

func (g *OpenAIQuestionGenerator) Name() string { return openAIProvider }

func (g *OpenAIQuestionGenerator) Generate(ctx context.Context, text domain.NormalizedText, sourceID string, target domain.DifficultyTarget) ([]domain.CandidateQuestion, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(text, target, g.opts.ExcerptChars)},
		},
		Temperature: float32(g.opts.Temperature),
		MaxTokens:   g.opts.MaxTokens,
	})
	if err != nil {
		return nil, domain.NewGenerationError(openAIProvider, err)
	}
	if len(resp.Choices) == 0 {
		g.logger.Warn("openai returned no choices", zap.String("source_pdf", sourceID))
		return nil, nil
	}
	return domain.ExtractJSONArray(resp.Choices[0].Message.Content), nil
}

var _ domain.QuestionGenerator = (*OpenAIQuestionGenerator)(nil)
