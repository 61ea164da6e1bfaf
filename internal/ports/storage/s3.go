package storage

import (
	"context"
	"time"
)

// IS3Client хранилище готовых HTML-отчётов (MinIO)
type IS3Client interface {
	PutFile(ctx context.Context, path string, data []byte, contentType string) error
	GetFile(ctx context.Context, path string) ([]byte, error)
	GetPresignedURL(ctx context.Context, path string, expires time.Duration) (string, error)
}
