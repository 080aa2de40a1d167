package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sanitize validates untrusted candidates and coerces them into Questions.
// Candidates without a question text or with fewer than four options are dropped.
// sourceID overrides any source the candidate claims.
func Sanitize(candidates []CandidateQuestion, sourceID string) []Question {
	out := make([]Question, 0, len(candidates))
	for _, c := range candidates {
		if q, ok := SanitizeOne(c, sourceID); ok {
			out = append(out, q)
		}
	}
	return out
}

// SanitizeOne applies the Sanitize rules to a single candidate.
func SanitizeOne(c CandidateQuestion, sourceID string) (Question, bool) {
	if c == nil {
		return Question{}, false
	}
	text, ok := c["question"].(string)
	if !ok || strings.TrimSpace(text) == "" {
		return Question{}, false
	}
	rawOptions, ok := c["options"].([]any)
	if !ok {
		if strs, isStrings := c["options"].([]string); isStrings {
			rawOptions = make([]any, len(strs))
			for i, s := range strs {
				rawOptions[i] = s
			}
			ok = true
		}
	}
	if !ok || len(rawOptions) < OptionCount {
		return Question{}, false
	}

	q := Question{
		text:            text,
		correctAnswer:   clampInt(numberOr(c["correct_answer"], 0), 0, OptionCount-1),
		explanation:     stringOr(c["explanation"], ""),
		hint:            stringOr(c["hint"], ""),
		category:        stringOr(c["category"], DefaultCategory),
		difficulty:      DifficultyExpert,
		reasoning:       stringOr(c["reasoning"], ""),
		complexityScore: DefaultComplexity,
		sourcePDF:       sourceID,
	}
	for i := 0; i < OptionCount; i++ {
		q.options[i] = stringify(rawOptions[i])
	}
	if label, isString := c["difficulty"].(string); isString {
		if d, known := ParseDifficulty(label); known {
			q.difficulty = d
		}
	}
	// Any non-zero number counts, so 0.5 clamps to the minimum instead of the default.
	if score, ok := numericValue(c["complexity_score"]); ok && score != 0 {
		q.complexityScore = clampInt(truncate(score), MinComplexityScore, MaxComplexityScore)
	}
	return q, true
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// numberOr converts numeric values and numeric strings, truncating toward zero.
// Anything else, including NaN, yields def.
func numberOr(v any, def int) int {
	f, ok := numericValue(v)
	if !ok {
		return def
	}
	return truncate(f)
}

// numericValue reports the numeric value of v before any truncation.
func numericValue(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func truncate(f float64) int {
	if math.IsInf(f, 1) || f > math.MaxInt32 {
		return math.MaxInt32
	}
	if math.IsInf(f, -1) || f < math.MinInt32 {
		return math.MinInt32
	}
	return int(math.Trunc(f))
}

// stringOr stringifies v, returning def for falsy values.
func stringOr(v any, def string) string {
	switch n := v.(type) {
	case nil:
		return def
	case string:
		if n == "" {
			return def
		}
		return n
	case bool:
		if !n {
			return def
		}
	case float64:
		if n == 0 || math.IsNaN(n) {
			return def
		}
	case int:
		if n == 0 {
			return def
		}
	}
	return stringify(v)
}

func stringify(v any) string {
	switch n := v.(type) {
	case nil:
		return "null"
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	case json.Number:
		return n.String()
	case fmt.Stringer:
		return n.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
