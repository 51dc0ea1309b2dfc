// Package uploader stores media bytes with a third-party host. Every
// implementation is best-effort: the upload pipeline falls back to local
// embedding on any error, so nothing here is allowed to be load-bearing.
package uploader

import (
	"context"
	"io"
)

// Asset is one file handed to a remote uploader.
type Asset struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// ProgressFunc receives the fraction of bytes transmitted so far, in [0, 1].
type ProgressFunc func(fraction float64)

type Uploader interface {
	IsConfigured() bool
	// Upload stores the asset and returns its public URL.
	Upload(ctx context.Context, asset Asset, onProgress ProgressFunc) (string, error)
}
