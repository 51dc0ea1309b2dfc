package config

import (
	"github.com/cloudinary/cloudinary-go/v2"
)

// NewCloudinaryClient returns nil without error when credentials are absent;
// the caller treats that as "uploader not configured".
func NewCloudinaryClient(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, nil
	}
	return cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
}
