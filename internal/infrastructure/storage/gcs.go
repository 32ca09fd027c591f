// Package storage provides blob store implementations behind the
// port.BlobStore interface.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/svml/uriage-bot/internal/application/port"
)

// GCSConfig holds Google Cloud Storage configuration
type GCSConfig struct {
	Bucket string
}

// GCSStore implements port.BlobStore against a GCS bucket
type GCSStore struct {
	bucket *gcs.BucketHandle
	logger *zap.Logger
}

// NewGCSStore creates a blob store bound to the configured bucket
func NewGCSStore(client *gcs.Client, cfg GCSConfig, logger *zap.Logger) (*GCSStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	return &GCSStore{
		bucket: client.Bucket(cfg.Bucket),
		logger: logger,
	}, nil
}

// Get returns the object bytes, or port.ErrObjectNotFound
func (s *GCSStore) Get(ctx context.Context, key string) ([]byte, error) {
	reader, err := s.bucket.Object(key).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, port.ErrObjectNotFound
	}
	if err != nil {
		s.logger.Error("GCS read failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		s.logger.Error("GCS read failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	return data, nil
}

// Put writes the object with JSON content type
func (s *GCSStore) Put(ctx context.Context, key string, data []byte) error {
	writer := s.bucket.Object(key).NewWriter(ctx)
	writer.ContentType = "application/json"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		s.logger.Error("GCS write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		s.logger.Error("GCS write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("gcs write %s: %w", key, err)
	}

	s.logger.Debug("GCS object written",
		zap.String("key", key),
		zap.Int("size", len(data)))
	return nil
}

// Delete removes the object; a missing object is not an error
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		s.logger.Error("GCS delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("gcs delete %s: %w", key, err)
	}
	return nil
}

// List returns the keys under the given prefix
func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	it := s.bucket.Objects(ctx, &gcs.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			s.logger.Error("GCS list failed", zap.String("prefix", prefix), zap.Error(err))
			return nil, fmt.Errorf("gcs list %s: %w", prefix, err)
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}
