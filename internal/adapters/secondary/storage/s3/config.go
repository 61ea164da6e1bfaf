package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const bucketCheckTimeout = 5 * time.Second

type Config struct {
	Enabled   bool   `envconfig:"ENABLED" default:"false"`
	Host      string `envconfig:"HOST" default:"localhost:9000"`
	AccessKey string `envconfig:"ACCESS_KEY"`
	SecretKey string `envconfig:"SECRET_KEY"`
	Bucket    string `envconfig:"BUCKET" default:"reports"`
	Region    string `envconfig:"REGION"`
	UseSSL    bool   `envconfig:"USE_SSL" default:"false"`
}

// NewClient создаёт MinIO клиент; отсутствующий bucket создаётся
func (c *Config) NewClient() (*minio.Client, error) {
	client, err := minio.New(c.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
		Region: c.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), bucketCheckTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, c.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", c.Bucket, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, c.Bucket, minio.MakeBucketOptions{Region: c.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", c.Bucket, err)
		}
	}

	return client, nil
}
