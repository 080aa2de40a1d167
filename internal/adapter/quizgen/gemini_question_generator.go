package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"istqb-quiz/internal/config"
	"istqb-quiz/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const geminiProvider = "gemini"

// contentGenerator is the part of *genai.GenerativeModel the generator calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiQuestionGenerator asks a Gemini model for questions.
type GeminiQuestionGenerator struct {
	client *genai.Client
	model  contentGenerator
	opts   Options
	logger *zap.Logger
}

// NewGeminiQuestionGenerator fails when no API key is configured.
func NewGeminiQuestionGenerator(ctx context.Context, cfg config.ProviderConfig, opts Options, logger *zap.Logger) (*GeminiQuestionGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	opts = opts.withDefaults()

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(float32(opts.Temperature))
	model.SetMaxOutputTokens(int32(opts.MaxTokens))
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(SystemPrompt)}}

	g := newGeminiQuestionGenerator(model, opts, logger)
	g.client = client
	return g, nil
}

func newGeminiQuestionGenerator(model contentGenerator, opts Options, logger *zap.Logger) *GeminiQuestionGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiQuestionGenerator{model: model, opts: opts.withDefaults(), logger: logger}
}

func (g *GeminiQuestionGenerator) Name() string { return geminiProvider }

func (g *GeminiQuestionGenerator) Generate(ctx context.Context, text domain.NormalizedText, sourceID string, target domain.DifficultyTarget) ([]domain.CandidateQuestion, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(callCtx, genai.Text(BuildPrompt(text, target, g.opts.ExcerptChars)))
	if err != nil {
		return nil, domain.NewGenerationError(geminiProvider, err)
	}
	raw := responseText(resp)
	if raw == "" {
		g.logger.Warn("gemini returned an empty response", zap.String("source_pdf", sourceID))
		return nil, nil
	}
	return domain.ExtractJSONArray(raw), nil
}

// Close releases the underlying client.
func (g *GeminiQuestionGenerator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		// The first candidate with content is the answer.
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}

var _ domain.QuestionGenerator = (*GeminiQuestionGenerator)(nil)
