package docstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"istqb-quiz/internal/domain"

	"go.uber.org/zap"
)

// LocalDocumentStore keeps documents as flat files inside one directory.
type LocalDocumentStore struct {
	dir    string
	logger *zap.Logger
}

func NewLocalDocumentStore(dir string, logger *zap.Logger) (*LocalDocumentStore, error) {
	if dir == "" {
		return nil, errors.New("local storage directory cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalDocumentStore{dir: dir, logger: logger}, nil
}

// List returns at most limit file names in lexical order. Directories are skipped.
func (s *LocalDocumentStore) List(ctx context.Context, limit int) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, domain.NewStoreError("list documents", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

func (s *LocalDocumentStore) Download(ctx context.Context, id string) ([]byte, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.NewNotFoundError(fmt.Sprintf("document %q not found", id))
	}
	if err != nil {
		return nil, domain.NewStoreError("download document", err)
	}
	return data, nil
}

// Upload writes through a temp file so readers never see a partial document.
func (s *LocalDocumentStore) Upload(ctx context.Context, id string, r io.Reader, _ string) error {
	if err := validateID(id); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return domain.NewStoreError("upload document", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return domain.NewStoreError("upload document", err)
	}
	if err := tmp.Close(); err != nil {
		return domain.NewStoreError("upload document", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, id)); err != nil {
		return domain.NewStoreError("upload document", err)
	}
	s.logger.Debug("Document stored", zap.String("id", id))
	return nil
}

var _ domain.DocumentStore = (*LocalDocumentStore)(nil)
