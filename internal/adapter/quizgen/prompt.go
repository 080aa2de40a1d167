package quizgen

import (
	"fmt"
	"strings"
	"time"

	"istqb-quiz/internal/domain"
)

// SystemPrompt is sent as the system message to every chat provider.
const SystemPrompt = "You write high-quality ISTQB exam questions with rigorous explanations."

const contentHeader = "\n\nPDF Content (trimmed):\n"

// Options holds the generation parameters shared by the AI strategies.
type Options struct {
	Temperature  float64
	MaxTokens    int
	ExcerptChars int
	Timeout      time.Duration
}

// DefaultOptions mirrors the configuration defaults.
var DefaultOptions = Options{
	Temperature:  0.5,
	MaxTokens:    6000,
	ExcerptChars: 16000,
	Timeout:      2 * time.Minute,
}

func (o Options) withDefaults() Options {
	if o.Temperature <= 0 {
		o.Temperature = DefaultOptions.Temperature
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultOptions.MaxTokens
	}
	if o.ExcerptChars <= 0 {
		o.ExcerptChars = DefaultOptions.ExcerptChars
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultOptions.Timeout
	}
	return o
}

// BuildPrompt renders the user message: the instruction for target followed by the
// first excerptChars runes of text.
func BuildPrompt(text domain.NormalizedText, target domain.DifficultyTarget, excerptChars int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert ISTQB instructor. Create %d multiple-choice questions strictly from the provided content. ", target.Total())
	fmt.Fprintf(&b, "Difficulty distribution: Expert %d, Master %d, Champion %d. ", target.Expert, target.Master, target.Champion)
	b.WriteString("Each question must have exactly 4 options and one correct_answer (0-3). ")
	b.WriteString("Output ONLY a JSON array with objects having keys: question, options, correct_answer, explanation, hint, category, difficulty (Expert|Master|Champion), reasoning, complexity_score (1-10).")
	b.WriteString(contentHeader)
	b.WriteString(text.Excerpt(excerptChars))
	return b.String()
}
