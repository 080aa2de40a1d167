package domain

import (
	"regexp"
	"strings"
)

// NormalizedText is extracted document text with control characters removed and
// whitespace collapsed. Build it with NormalizeText.
type NormalizedText string

var (
	controlChars   = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	whitespaceRuns = regexp.MustCompile(`[\s\p{Z}]+`)
)

// NormalizeText replaces control characters with spaces, collapses whitespace runs
// into a single space and trims the result.
func NormalizeText(raw string) NormalizedText {
	cleaned := controlChars.ReplaceAllString(raw, " ")
	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	return NormalizedText(strings.TrimSpace(cleaned))
}

// IsEmpty reports whether there is nothing to generate questions from.
func (t NormalizedText) IsEmpty() bool {
	return len(t) == 0
}

func (t NormalizedText) String() string {
	return string(t)
}

// Excerpt returns at most limit runes of the text.
func (t NormalizedText) Excerpt(limit int) string {
	return TruncateRunes(string(t), limit)
}

// TruncateRunes cuts s to at most limit runes without splitting a UTF-8 sequence.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
