package service

import (
	"context"

	"istqb-quiz/internal/domain"
)

// ContentNormalizer extracts text from a raw document and normalizes it.
type ContentNormalizer struct {
	extractor domain.TextExtractor
}

func NewContentNormalizer(extractor domain.TextExtractor) *ContentNormalizer {
	return &ContentNormalizer{extractor: extractor}
}

// Normalize returns the cleaned document text. Extraction failures are returned
// unchanged so callers can tell them apart by code.
func (n *ContentNormalizer) Normalize(ctx context.Context, raw []byte) (domain.NormalizedText, error) {
	text, err := n.extractor.Extract(ctx, raw)
	if err != nil {
		return "", err
	}
	return domain.NormalizeText(text), nil
}
