package domain

import (
	"encoding/json"
	"strings"
)

// StripThinkBlocks removes a leading <think>...</think> section some models emit.
func StripThinkBlocks(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for {
		start := strings.Index(cleaned, "<think>")
		if start == -1 {
			return cleaned
		}
		end := strings.Index(cleaned, "</think>")
		if end == -1 || end < start {
			return cleaned
		}
		cleaned = strings.TrimSpace(cleaned[:start] + cleaned[end+len("</think>"):])
	}
}

// ExtractJSONArray parses the text between the first '[' and the last ']' of a model
// response. Prose around the array is ignored. A missing or unparsable array yields
// no candidates; elements that are not JSON objects are skipped.
func ExtractJSONArray(raw string) []CandidateQuestion {
	cleaned := StripThinkBlocks(raw)
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end <= start {
		return nil
	}

	var items []any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &items); err != nil {
		return nil
	}
	out := make([]CandidateQuestion, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, CandidateQuestion(obj))
		}
	}
	return out
}
