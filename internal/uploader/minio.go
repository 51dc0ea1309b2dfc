package uploader

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"moments-backend/internal/config"
)

// MinIO stores media in an S3-compatible bucket and serves it from the
// configured public endpoint.
type MinIO struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIO(client *minio.Client, cfg *config.Config) *MinIO {
	return &MinIO{client: client, cfg: cfg}
}

func (u *MinIO) IsConfigured() bool {
	return u != nil && u.client != nil
}

func (u *MinIO) Upload(ctx context.Context, asset Asset, onProgress ProgressFunc) (string, error) {
	if !u.IsConfigured() {
		return "", errors.New("minio client not configured")
	}

	objectName := fmt.Sprintf("events/%s/%s", time.Now().Format("2006/01"), uuid.New().String())
	reader := newProgressReader(asset.Reader, asset.Size, onProgress)

	_, err := u.client.PutObject(ctx, u.cfg.MinIOBucket, objectName, reader, asset.Size, minio.PutObjectOptions{
		ContentType: asset.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}
	return u.publicURL(objectName), nil
}

func (u *MinIO) publicURL(objectName string) string {
	scheme := "http"
	if u.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.cfg.MinIOPublicEndpoint, u.cfg.MinIOBucket, url.PathEscape(objectName))
}
