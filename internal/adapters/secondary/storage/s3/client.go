package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/admin/astrografia/internal/ports/storage"
	"github.com/minio/minio-go/v7"
)

const defaultPresignTTL = 15 * time.Minute

// Client хранилище отчётов поверх minio.Client
type Client struct {
	client *minio.Client
	bucket string
	log    *slog.Logger
}

func NewClient(client *minio.Client, bucket string, log *slog.Logger) *Client {
	return &Client{
		client: client,
		bucket: bucket,
		log:    log,
	}
}

var _ storage.IS3Client = (*Client)(nil)

// PutFile загружает объект целиком
func (c *Client) PutFile(ctx context.Context, path string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := c.client.PutObject(ctx, c.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		c.log.Error("failed to put object", "bucket", c.bucket, "path", path, "error", err)
		return fmt.Errorf("put object %s: %w", path, err)
	}

	c.log.Debug("object stored", "bucket", c.bucket, "path", path, "size", info.Size)
	return nil
}

func (c *Client) GetFile(ctx context.Context, path string) ([]byte, error) {
	object, err := c.client.GetObject(ctx, c.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", path, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", path, err)
	}

	return data, nil
}

func (c *Client) GetPresignedURL(ctx context.Context, path string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = defaultPresignTTL
	}

	url, err := c.client.PresignedGetObject(ctx, c.bucket, path, expires, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", path, err)
	}

	return url.String(), nil
}
