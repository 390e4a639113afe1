package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"speech2text/internal/config"
)

// Archive keeps a copy of uploaded audio and returns a URL for it
type Archive interface {
	Put(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// MinioArchive implements Archive on any S3-compatible object store
type MinioArchive struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
	now      func() time.Time
}

// NewMinioArchive connects to the object store and makes sure the bucket exists
func NewMinioArchive(ctx context.Context, cfg config.ArchiveConfig) (*MinioArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: "us-east-1",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioArchive{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
		useSSL:   cfg.UseSSL,
		now:      time.Now,
	}, nil
}

// Put uploads the audio under a fresh key and returns its object URL
func (a *MinioArchive) Put(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := ObjectKey(a.now(), filename, contentType)

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": filename,
			"uploaded-at":   a.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload audio to MinIO: %w", err)
	}

	return a.FileURL(key), nil
}

// FileURL returns the URL for accessing an archived object
func (a *MinioArchive) FileURL(key string) string {
	protocol := "http"
	if a.useSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, a.endpoint, a.bucket, key)
}

// ObjectKey builds audio/<yyyy>/<mm>/<dd>/<unix>-<uuid8><ext>. The extension
// comes from the upload filename, falling back to the content type.
func ObjectKey(now time.Time, filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}

	now = now.UTC()
	return fmt.Sprintf("audio/%s/%d-%s%s", now.Format("2006/01/02"), now.Unix(), uuid.New().String()[:8], ext)
}
