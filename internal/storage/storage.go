package storage

import (
	"context"
	"fmt"
	"io"

	"nutritrack/internal/config"
)

// ObjectStore persists uploaded files under a key and returns the path the
// client uses to fetch them back.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// New builds the backend selected by cfg.UploadBackend.
func New(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	switch cfg.UploadBackend {
	case "", "local":
		return NewLocalStore(cfg.UploadDir), nil
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported upload backend %q", cfg.UploadBackend)
	}
}
