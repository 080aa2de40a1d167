package quizgen

import (
	"context"
	"fmt"
	"strings"

	"istqb-quiz/internal/config"
	"istqb-quiz/internal/domain"

	"go.uber.org/zap"
)

// Strategies is the ordered AI chain plus the mandatory heuristic fallback.
type Strategies struct {
	AI        []domain.QuestionGenerator
	Heuristic domain.QuestionGenerator
}

// Names lists the enabled strategies in call order.
func (s Strategies) Names() []string {
	names := make([]string, 0, len(s.AI)+1)
	for _, g := range s.AI {
		names = append(names, g.Name())
	}
	if s.Heuristic != nil {
		names = append(names, s.Heuristic.Name())
	}
	return names
}

// NewStrategiesFromConfig builds the providers named in generation.strategy_order.
// A provider without credentials is skipped with a log line; an unknown name is an error.
func NewStrategiesFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Strategies, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	gen := cfg.Generation
	opts := Options{
		Temperature:  gen.Temperature,
		MaxTokens:    gen.MaxTokens,
		ExcerptChars: gen.ExcerptChars,
		Timeout:      gen.RequestTimeout,
	}

	out := Strategies{Heuristic: NewHeuristicQuestionGenerator(gen.HeuristicMinLen, gen.HeuristicMaxLen)}
	seen := make(map[string]bool)
	for _, raw := range gen.StrategyOrder {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var (
			g   domain.QuestionGenerator
			err error
		)
		switch name {
		case openAIProvider:
			g, err = NewOpenAIQuestionGenerator(cfg.LLM.OpenAI, opts, logger)
		case geminiProvider:
			g, err = NewGeminiQuestionGenerator(ctx, cfg.LLM.Gemini, opts, logger)
		case groqProvider:
			g, err = NewGroqQuestionGenerator(cfg.LLM.Groq, opts, logger)
		case ollamaProvider:
			g, err = NewOllamaQuestionGenerator(cfg.LLM.Ollama, opts, logger)
		case domain.HeuristicStrategyName:
			continue
		default:
			return Strategies{}, fmt.Errorf("unknown generation strategy %q", raw)
		}
		if err != nil {
			logger.Info("Generation strategy disabled", zap.String("strategy", name), zap.Error(err))
			continue
		}
		out.AI = append(out.AI, g)
	}

	return out, nil
}

// Close releases provider clients that hold connections.
func (s Strategies) Close() {
	for _, g := range s.AI {
		if c, ok := g.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	}
}
