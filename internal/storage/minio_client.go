package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"intwork/internal/config"
)

// Storage keeps post cover images. Upload returns the object name and its public URL.
type Storage interface {
	UploadCover(ctx context.Context, fileName string, file io.Reader, size int64) (string, string, error)
	DeleteCover(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
}

// NewMinIOClient returns nil, nil when no endpoint is configured; the post
// form then only accepts an image URL.
func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("error creating bucket %s: %w", cfg.BucketName, err)
		}
		slog.Info("created cover bucket", "bucket", cfg.BucketName)
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

func (m *MinIOClient) UploadCover(ctx context.Context, fileName string, file io.Reader, size int64) (string, string, error) {
	objectName := ObjectName(fileName, time.Now())

	contentType := mime.TypeByExtension(filepath.Ext(objectName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.cfg.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("error uploading cover to MinIO: %w", err)
	}

	return objectName, PublicURL(m.cfg, objectName), nil
}

func (m *MinIOClient) DeleteCover(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("error deleting cover from MinIO: %w", err)
	}
	return nil
}

// ObjectName files covers by month under a random name, keeping the lowercased extension.
func ObjectName(fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("covers/%d/%02d/%s%s", now.Year(), now.Month(), uuid.NewString(), ext)
}

// PublicURL prefers the configured public base and otherwise addresses the endpoint directly.
func PublicURL(cfg config.MinIO, objectName string) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/") + "/" + objectName
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.Endpoint, cfg.BucketName, objectName)
}
