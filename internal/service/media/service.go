package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"moments-backend/internal/domain"
	"moments-backend/internal/service/assist"
	"moments-backend/internal/store"
)

var (
	ErrNotFound = errors.New("media not found")
	ErrNotImage = errors.New("media is not an image")
)

// maxFetchBytes bounds how much of a stored asset is pulled back in for
// analysis.
const maxFetchBytes = 20 * 1024 * 1024

type Service interface {
	List(ctx context.Context) []domain.MediaItem
	ListByEvent(ctx context.Context, eventID string) []domain.MediaItem
	Update(ctx context.Context, id string, input domain.UpdateMediaInput) (domain.MediaItem, error)
	Delete(ctx context.Context, id string) error
	// Describe loads the image bytes back from the stored URL, asks the
	// assist service for a description and persists it on the item.
	Describe(ctx context.Context, id string) (domain.MediaItem, error)
}

type service struct {
	store  store.Store
	assist assist.Service
	client *http.Client
}

func NewService(st store.Store, assistSvc assist.Service) Service {
	return &service{
		store:  st,
		assist: assistSvc,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *service) List(ctx context.Context) []domain.MediaItem {
	return s.store.ListMedia(ctx)
}

func (s *service) ListByEvent(ctx context.Context, eventID string) []domain.MediaItem {
	return s.store.ListMediaByEvent(ctx, eventID)
}

func (s *service) Update(ctx context.Context, id string, input domain.UpdateMediaInput) (domain.MediaItem, error) {
	item, ok := s.find(ctx, id)
	if !ok {
		return domain.MediaItem{}, ErrNotFound
	}

	if input.Caption != nil {
		item.Caption = input.Caption
	}
	if input.AIDescription != nil {
		item.AIDescription = input.AIDescription
	}
	if input.UploaderName != nil {
		item.UploaderName = input.UploaderName
	}

	if err := s.store.UpdateMedia(ctx, item); err != nil {
		return domain.MediaItem{}, err
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteMedia(ctx, id)
}

func (s *service) Describe(ctx context.Context, id string) (domain.MediaItem, error) {
	item, ok := s.find(ctx, id)
	if !ok {
		return domain.MediaItem{}, ErrNotFound
	}
	if item.Type != domain.MediaTypeImage {
		return domain.MediaItem{}, ErrNotImage
	}

	data, mimeType, err := s.fetch(ctx, item.URL)
	if err != nil {
		return domain.MediaItem{}, fmt.Errorf("failed to load media bytes: %w", err)
	}

	description := s.assist.AnalyzeImage(ctx, data, mimeType)
	item.AIDescription = &description
	if err := s.store.UpdateMedia(ctx, item); err != nil {
		return domain.MediaItem{}, err
	}
	return item, nil
}

func (s *service) find(ctx context.Context, id string) (domain.MediaItem, bool) {
	for _, item := range s.store.ListMedia(ctx) {
		if item.ID == id {
			return item, true
		}
	}
	return domain.MediaItem{}, false
}

// fetch resolves a stored URL back to raw bytes: data URIs decode locally,
// remote addresses are fetched over HTTP.
func (s *service) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	if strings.HasPrefix(rawURL, "data:") {
		return decodeDataURL(rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d fetching media", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func decodeDataURL(rawURL string) ([]byte, string, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(rawURL, "data:"), ",")
	if !ok {
		return nil, "", errors.New("malformed data url")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", errors.New("unsupported data url encoding")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data url: %w", err)
	}
	return data, strings.TrimSuffix(meta, ";base64"), nil
}
