package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MadinaDev2107/Group-Manager/internal/config"
)

// StorageService archives exported rosters in a MinIO bucket.
type StorageService struct {
	client   *minio.Client
	bucket   string
	endpoint string
}

func NewStorageService(ctx context.Context, cfg *config.MinIOConfig) (*StorageService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.User, cfg.Password, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Pastikan bucket ada
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &StorageService{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: fmt.Sprintf("%s://%s", scheme, cfg.Endpoint),
	}, nil
}

// UploadPDF stores data under folder and returns the object URL.
func (s *StorageService) UploadPDF(ctx context.Context, folder string, data []byte, name string) (string, error) {
	fileName := ObjectName(folder, name, uuid.New().String()[:8])

	_, err := s.client.PutObject(ctx, s.bucket, fileName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload PDF: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, fileName), nil
}

// ObjectName builds "folder/name-suffix.pdf" with spaces and slashes in name
// replaced by dashes.
func ObjectName(folder, name, suffix string) string {
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "/", "-")
	return fmt.Sprintf("%s/%s-%s.pdf", folder, name, suffix)
}
