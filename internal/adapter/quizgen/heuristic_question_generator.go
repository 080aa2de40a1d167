package quizgen

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"istqb-quiz/internal/domain"
)

const (
	defaultMinSentenceLen = 40
	defaultMaxSentenceLen = 240
	optionStemLen         = 90
)

var heuristicComplexity = map[domain.Difficulty]int{
	domain.DifficultyExpert:   7,
	domain.DifficultyMaster:   8,
	domain.DifficultyChampion: 9,
}

// HeuristicQuestionGenerator turns sentences of the document into concept questions.
// It needs no network and never fails, which makes it the last strategy in the chain.
type HeuristicQuestionGenerator struct {
	minLen int
	maxLen int
}

// NewHeuristicQuestionGenerator keeps sentences whose rune length is strictly between
// minLen and maxLen. Non-positive bounds fall back to 40 and 240.
func NewHeuristicQuestionGenerator(minLen, maxLen int) *HeuristicQuestionGenerator {
	if minLen <= 0 {
		minLen = defaultMinSentenceLen
	}
	if maxLen <= 0 {
		maxLen = defaultMaxSentenceLen
	}
	return &HeuristicQuestionGenerator{minLen: minLen, maxLen: maxLen}
}

func (g *HeuristicQuestionGenerator) Name() string { return domain.HeuristicStrategyName }

func (g *HeuristicQuestionGenerator) Generate(_ context.Context, text domain.NormalizedText, _ string, target domain.DifficultyTarget) ([]domain.CandidateQuestion, error) {
	var picked []string
	for _, s := range splitSentences(text.String()) {
		n := utf8.RuneCountInString(s)
		if n > g.minLen && n < g.maxLen {
			picked = append(picked, s)
		}
	}
	if total := target.Total(); len(picked) > total {
		picked = picked[:total]
	}

	out := make([]domain.CandidateQuestion, 0, len(picked))
	for i, s := range picked {
		d := tierAt(target, i)
		stem := domain.TruncateRunes(s, optionStemLen)
		out = append(out, domain.CandidateQuestion{
			"question": "Which option best reflects the statement: " + s,
			"options": []string{
				"Directly supports: " + stem,
				"Contradicts: " + stem,
				"Irrelevant to: " + stem,
				"Partially supports: " + stem,
			},
			"correct_answer":   0,
			"explanation":      "Derived from source content; validate against the PDF.",
			"hint":             "Recall the key phrase of the statement.",
			"category":         domain.DefaultCategory,
			"difficulty":       string(d),
			"reasoning":        "Heuristic conversion from statement to concept question.",
			"complexity_score": heuristicComplexity[d],
		})
	}
	return out, nil
}

// tierAt assigns tiers in blocks: the first target.Expert questions are Expert, then
// Master, then Champion.
func tierAt(target domain.DifficultyTarget, i int) domain.Difficulty {
	switch {
	case i < target.Expert:
		return domain.DifficultyExpert
	case i < target.Expert+target.Master:
		return domain.DifficultyMaster
	default:
		return domain.DifficultyChampion
	}
}

// splitSentences cuts after '.', '!' or '?' when whitespace follows.
func splitSentences(s string) []string {
	var out []string
	runes := []rune(s)
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		switch runes[i] {
		case '.', '!', '?':
			if unicode.IsSpace(runes[i+1]) {
				out = appendTrimmed(out, string(runes[start:i+1]))
				start = i + 1
			}
		}
	}
	return appendTrimmed(out, string(runes[start:]))
}

func appendTrimmed(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}

var _ domain.QuestionGenerator = (*HeuristicQuestionGenerator)(nil)
