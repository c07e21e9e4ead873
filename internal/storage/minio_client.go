package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/config"
)

// NewMinioClient initializes a MinIO client and ensures the report bucket exists.
func NewMinioClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := minioClient.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.MinioBucket, err)
		}
		logger.Info("created report bucket", zap.String("bucket", cfg.MinioBucket))
	}
	return minioClient, nil
}

// MinioReportStore archives rendered reports in a single bucket.
type MinioReportStore struct {
	client *minio.Client
	bucket string
}

func NewMinioReportStore(client *minio.Client, bucket string) *MinioReportStore {
	return &MinioReportStore{client: client, bucket: bucket}
}

// Put uploads data under key, replacing any previous object.
func (s *MinioReportStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s/%s: %w", s.bucket, key, err)
	}
	return nil
}
