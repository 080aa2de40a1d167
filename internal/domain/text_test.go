package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want NormalizedText
	}{
		{"plain text", "Testing shows defects.", "Testing shows defects."},
		{"collapses whitespace", "  a \t\t b\n\n\nc  ", "a b c"},
		{"replaces control characters", "risk\x00based\x07testing\x7f", "risk based testing"},
		{"form feed between pages", "page one\x0c\x0cpage two", "page one page two"},
		{"non-breaking space", "exit  criteria", "exit criteria"},
		{"whitespace only", " \n\t\r ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.raw))
		})
	}
}

func TestNormalizeText_NoControlCharsOrDoubledWhitespace(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 256; i++ {
		b.WriteByte(byte(i % 128))
		if i%7 == 0 {
			b.WriteString("  word  ")
		}
	}

	got := string(NormalizeText(b.String()))

	for _, r := range got {
		assert.False(t, r < 0x20 || r == 0x7f, "control character %q left in output", r)
	}
	assert.NotContains(t, got, "  ")
	assert.Equal(t, strings.TrimSpace(got), got)
}

func TestNormalizedText_Excerpt(t *testing.T) {
	text := NormalizedText("äöü testing")

	assert.Equal(t, "äöü", text.Excerpt(3))
	assert.Equal(t, "äöü testing", text.Excerpt(100))
	assert.Equal(t, "", text.Excerpt(0))
	assert.True(t, NormalizedText("").IsEmpty())
}
