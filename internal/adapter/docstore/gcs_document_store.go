package docstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"istqb-quiz/internal/domain"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	gcsListTimeout     = 30 * time.Second
	gcsTransferTimeout = 2 * time.Minute
)

// GCSDocumentStore lists the top level of a Cloud Storage bucket.
type GCSDocumentStore struct {
	client *storage.Client
	bucket string
	logger *zap.Logger
}

// NewGCSDocumentStore uses application default credentials unless credentialsFile is set.
func NewGCSDocumentStore(ctx context.Context, bucket, credentialsFile string, logger *zap.Logger, extra ...option.ClientOption) (*GCSDocumentStore, error) {
	if bucket == "" {
		return nil, errors.New("storage bucket cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, extra...)

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSDocumentStore{client: client, bucket: bucket, logger: logger}, nil
}

func (s *GCSDocumentStore) List(ctx context.Context, limit int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, gcsListTimeout)
	defer cancel()

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Delimiter: "/"})
	var names []string
	for limit <= 0 || len(names) < limit {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, domain.NewStoreError("list documents", err)
		}
		// Synthetic prefix entries stand for folders.
		if attrs.Name == "" || attrs.Prefix != "" {
			continue
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

func (s *GCSDocumentStore) Download(ctx context.Context, id string) ([]byte, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, gcsTransferTimeout)
	defer cancel()

	r, err := s.client.Bucket(s.bucket).Object(id).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, domain.NewNotFoundError(fmt.Sprintf("document %q not found", id))
	}
	if err != nil {
		return nil, domain.NewStoreError("download document", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.NewStoreError("download document", err)
	}
	return data, nil
}

func (s *GCSDocumentStore) Upload(ctx context.Context, id string, r io.Reader, contentType string) error {
	if err := validateID(id); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, gcsTransferTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(id).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return domain.NewStoreError("upload document", err)
	}
	if err := w.Close(); err != nil {
		return domain.NewStoreError("upload document", err)
	}
	s.logger.Debug("Document uploaded", zap.String("bucket", s.bucket), zap.String("id", id))
	return nil
}

func (s *GCSDocumentStore) Close() error {
	return s.client.Close()
}

var _ domain.DocumentStore = (*GCSDocumentStore)(nil)
