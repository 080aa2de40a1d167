package domain

import (
	"context"
	"io"
	"time"
)

// DocumentStore lists and fetches source PDFs.
type DocumentStore interface {
	List(ctx context.Context, limit int) ([]string, error)
	Download(ctx context.Context, id string) ([]byte, error)
	Upload(ctx context.Context, id string, r io.Reader, contentType string) error
}

// TextExtractor turns raw document bytes into page text joined by blank lines.
// Unparsable input fails with an EXTRACTION_ERROR DomainError.
type TextExtractor interface {
	Extract(ctx context.Context, raw []byte) (string, error)
}

// QuestionGenerator produces candidate questions for a document. Implementations may
// return fewer questions than requested. Provider faults are GENERATION_ERROR.
type QuestionGenerator interface {
	Name() string
	Generate(ctx context.Context, text NormalizedText, sourceID string, target DifficultyTarget) ([]CandidateQuestion, error)
}

// QuestionRepository persists questions.
type QuestionRepository interface {
	ExistingQuestionTexts(ctx context.Context, sourceID string, limit int) (map[string]struct{}, error)
	InsertMany(ctx context.Context, questions []Question) error
	List(ctx context.Context, filter QuestionFilter) ([]StoredQuestion, error)
	GetByIDs(ctx context.Context, ids []string) ([]StoredQuestion, error)
	Random(ctx context.Context, limit int) ([]StoredQuestion, error)
	Count(ctx context.Context) (int, error)
}

// SourceLocker serializes the dedup-fetch-then-insert sequence per source document.
// Acquire returns false when another worker holds the lock.
type SourceLocker interface {
	Acquire(ctx context.Context, sourceID string, ttl time.Duration) (unlock func(), ok bool, err error)
}
