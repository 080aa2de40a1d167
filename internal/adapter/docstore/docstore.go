// Package docstore holds the document stores the agent reads source PDFs from.
package docstore

import (
	"context"
	"fmt"
	"path"
	"strings"

	"istqb-quiz/internal/config"
	"istqb-quiz/internal/domain"

	"go.uber.org/zap"
)

const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
)

// NewFromConfig builds the configured DocumentStore.
func NewFromConfig(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (domain.DocumentStore, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		return NewLocalDocumentStore(cfg.LocalDir, logger)
	case BackendGCS:
		return NewGCSDocumentStore(ctx, cfg.Bucket, cfg.GCSCredentialsFile, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// validateID rejects empty ids and anything that would escape the store root.
func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewInvalidInputError("document id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." || path.Clean(id) != id {
		return domain.NewInvalidInputError(fmt.Sprintf("invalid document id %q", id))
	}
	return nil
}
