// Package upload turns user-selected files into persisted media records,
// routing bytes through the remote uploader when one is configured and
// falling back to a self-contained data URI otherwise.
package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"moments-backend/internal/domain"
	"moments-backend/internal/service/assist"
	"moments-backend/internal/store"
	"moments-backend/internal/uploader"
)

// File is one user-selected file entering the pipeline. The whole payload is
// held in memory: the local-embedding fallback needs it all anyway.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Progress reports the batch position and the current file's transfer
// fraction in [0, 1].
type Progress struct {
	Index    int
	Total    int
	Fraction float64
}

type ProgressFunc func(Progress)

type Service interface {
	// Process handles files sequentially. A file whose remote upload fails is
	// embedded locally instead of aborting the batch; only a persistence
	// failure drops a file. The returned slice is the completion signal: its
	// length is the number of files that made it into the store.
	Process(ctx context.Context, eventID, uploaderName string, files []File, onProgress ProgressFunc) ([]domain.MediaItem, error)
}

type service struct {
	store   store.Store
	remote  uploader.Uploader
	assist  assist.Service
	timeout time.Duration
}

func NewService(st store.Store, remote uploader.Uploader, assistSvc assist.Service, timeout time.Duration) Service {
	return &service{store: st, remote: remote, assist: assistSvc, timeout: timeout}
}

func (s *service) Process(ctx context.Context, eventID, uploaderName string, files []File, onProgress ProgressFunc) ([]domain.MediaItem, error) {
	items := make([]domain.MediaItem, 0, len(files))
	var errs []error

	for i, file := range files {
		report := func(fraction float64) {
			if onProgress != nil {
				onProgress(Progress{Index: i, Total: len(files), Fraction: fraction})
			}
		}
		report(0)

		item := domain.MediaItem{
			ID:        store.NewMediaID(),
			EventID:   eventID,
			URL:       s.resolveURL(ctx, file, report),
			Type:      domain.MediaTypeFromContentType(file.ContentType),
			Timestamp: time.Now().UnixMilli(),
		}
		if uploaderName != "" {
			name := uploaderName
			item.UploaderName = &name
		}

		if err := s.store.CreateMedia(ctx, item); err != nil {
			errs = append(errs, fmt.Errorf("failed to persist %s: %w", file.Name, err))
			continue
		}
		report(1)
		items = append(items, item)

		if item.Type == domain.MediaTypeImage && s.assist != nil {
			s.describeAsync(item.ID, file)
		}
	}

	if len(items) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return items, nil
}

// resolveURL tries the remote host first and embeds locally on any failure.
// Embedding cannot fail: the bytes are already in memory.
func (s *service) resolveURL(ctx context.Context, file File, report uploader.ProgressFunc) string {
	if s.remote != nil && s.remote.IsConfigured() {
		uploadCtx := ctx
		cancel := context.CancelFunc(func() {})
		if s.timeout > 0 {
			uploadCtx, cancel = context.WithTimeout(ctx, s.timeout)
		}
		url, err := s.remote.Upload(uploadCtx, uploader.Asset{
			Reader:      bytes.NewReader(file.Data),
			Size:        int64(len(file.Data)),
			FileName:    file.Name,
			ContentType: file.ContentType,
		}, report)
		cancel()
		if err == nil {
			return url
		}
		log.Printf("Remote upload failed for %s, embedding locally: %v", file.Name, err)
	}
	return dataURL(file.ContentType, file.Data)
}

// describeAsync populates the AI description after upload completes.
// Best effort; errors are dropped.
func (s *service) describeAsync(id string, file File) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		description := s.assist.AnalyzeImage(ctx, file.Data, file.ContentType)
		if description == "" {
			return
		}
		for _, item := range s.store.ListMedia(ctx) {
			if item.ID == id {
				item.AIDescription = &description
				_ = s.store.UpdateMedia(ctx, item)
				return
			}
		}
	}()
}

func dataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
