package uploader

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	cldupload "github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary uploads assets to a single Cloudinary folder and returns the
// secure delivery URL.
type Cloudinary struct {
	client *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(client *cloudinary.Cloudinary, folder string) *Cloudinary {
	return &Cloudinary{client: client, folder: folder}
}

func (u *Cloudinary) IsConfigured() bool {
	return u != nil && u.client != nil
}

func (u *Cloudinary) Upload(ctx context.Context, asset Asset, onProgress ProgressFunc) (string, error) {
	if !u.IsConfigured() {
		return "", errors.New("cloudinary client not configured")
	}

	reader := newProgressReader(asset.Reader, asset.Size, onProgress)
	result, err := u.client.Upload.Upload(ctx, reader, cldupload.UploadParams{
		Folder: u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if result.SecureURL == "" {
		return "", errors.New("cloudinary returned no url")
	}
	return result.SecureURL, nil
}
