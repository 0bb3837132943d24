package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/farmconnect/farmconnect/backend/api/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStorage stores uploaded listing and tutorial media in a MinIO bucket.
type MediaStorage struct {
	client *minio.Client
	bucket string
	urlTTL time.Duration
}

// NewMediaStorage connects to MinIO and ensures the bucket exists.
func NewMediaStorage(ctx context.Context, cfg config.MinIOConfig) (*MediaStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	ttl := cfg.URLTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	s := &MediaStorage{client: mc, bucket: cfg.Bucket, urlTTL: ttl}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := mc.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket %s: %w", s.bucket, err)
		}
	}
	return s, nil
}

// Put uploads size bytes from r under key.
func (s *MediaStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", key, err)
	}
	return nil
}

// URL returns a presigned GET URL for key, valid for the configured TTL.
func (s *MediaStorage) URL(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.urlTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("minio presign %s: %w", key, err)
	}
	return u.String(), nil
}
