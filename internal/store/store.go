// Package store owns the canonical Event and MediaItem collections. All
// access goes through Store operations; callers work on fetched copies and
// never patch the store's state directly.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"moments-backend/internal/domain"
	"moments-backend/internal/kv"
)

const (
	eventsKey = "moments:events"
	mediaKey  = "moments:media"
)

// Store persists the two collections under independent keys of a key-value
// backend. Reads degrade to an empty collection when the backend is missing
// or corrupt; writes surface their errors.
type Store interface {
	// Initialize seeds empty keys with the demo dataset. Idempotent: a
	// populated key is never overwritten.
	Initialize(ctx context.Context) error

	ListEvents(ctx context.Context) []domain.Event
	GetEvent(ctx context.Context, id string) (domain.Event, bool)
	CreateEvent(ctx context.Context, event domain.Event) error
	// UpdateEvent replaces the event with the matching id in place. Unknown
	// ids are a silent no-op.
	UpdateEvent(ctx context.Context, event domain.Event) error
	// DeleteEvent removes the event and cascades to every MediaItem that
	// references it.
	DeleteEvent(ctx context.Context, id string) error

	ListMedia(ctx context.Context) []domain.MediaItem
	ListMediaByEvent(ctx context.Context, eventID string) []domain.MediaItem
	// CreateMedia inserts at the front so the newest upload lists first.
	CreateMedia(ctx context.Context, item domain.MediaItem) error
	UpdateMedia(ctx context.Context, item domain.MediaItem) error
	DeleteMedia(ctx context.Context, id string) error

	// ResetAll discards both collections and restores the demo dataset.
	// Destructive; callers gate it behind explicit confirmation.
	ResetAll(ctx context.Context) error

	Stats(ctx context.Context) domain.StorageStats
}

type kvStore struct {
	mu sync.Mutex
	kv kv.Store
}

func New(backend kv.Store) Store {
	return &kvStore{kv: backend}
}

func (s *kvStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seedLocked(ctx)
}

// seedLocked fills empty keys with the demo dataset. Caller holds s.mu.
func (s *kvStore) seedLocked(ctx context.Context) error {
	_, ok, err := s.kv.Get(ctx, eventsKey)
	if err != nil {
		return fmt.Errorf("failed to check events key: %w", err)
	}
	if !ok {
		if err := s.writeEvents(ctx, defaultEvents()); err != nil {
			return fmt.Errorf("failed to seed events: %w", err)
		}
	}

	_, ok, err = s.kv.Get(ctx, mediaKey)
	if err != nil {
		return fmt.Errorf("failed to check media key: %w", err)
	}
	if !ok {
		if err := s.writeMedia(ctx, defaultMedia()); err != nil {
			return fmt.Errorf("failed to seed media: %w", err)
		}
	}
	return nil
}

func (s *kvStore) ListEvents(ctx context.Context) []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readEvents(ctx)
}

func (s *kvStore) GetEvent(ctx context.Context, id string) (domain.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, event := range s.readEvents(ctx) {
		if event.ID == id {
			return event, true
		}
	}
	return domain.Event{}, false
}

func (s *kvStore) CreateEvent(ctx context.Context, event domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := append(s.readEvents(ctx), event)
	return s.writeEvents(ctx, events)
}

func (s *kvStore) UpdateEvent(ctx context.Context, event domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.readEvents(ctx)
	for i := range events {
		if events[i].ID == event.ID {
			events[i] = event
			return s.writeEvents(ctx, events)
		}
	}
	return nil
}

func (s *kvStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.readEvents(ctx)
	kept := events[:0]
	for _, event := range events {
		if event.ID != id {
			kept = append(kept, event)
		}
	}
	if err := s.writeEvents(ctx, kept); err != nil {
		return err
	}

	media := s.readMedia(ctx)
	keptMedia := media[:0]
	for _, item := range media {
		if item.EventID != id {
			keptMedia = append(keptMedia, item)
		}
	}
	return s.writeMedia(ctx, keptMedia)
}

func (s *kvStore) ListMedia(ctx context.Context) []domain.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readMedia(ctx)
}

func (s *kvStore) ListMediaByEvent(ctx context.Context, eventID string) []domain.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []domain.MediaItem
	for _, item := range s.readMedia(ctx) {
		if item.EventID == eventID {
			matched = append(matched, item)
		}
	}
	return matched
}

func (s *kvStore) CreateMedia(ctx context.Context, item domain.MediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	media := append([]domain.MediaItem{item}, s.readMedia(ctx)...)
	return s.writeMedia(ctx, media)
}

func (s *kvStore) UpdateMedia(ctx context.Context, item domain.MediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	media := s.readMedia(ctx)
	for i := range media {
		if media[i].ID == item.ID {
			media[i] = item
			return s.writeMedia(ctx, media)
		}
	}
	return nil
}

func (s *kvStore) DeleteMedia(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	media := s.readMedia(ctx)
	kept := media[:0]
	for _, item := range media {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return s.writeMedia(ctx, kept)
}

func (s *kvStore) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, eventsKey); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}
	if err := s.kv.Delete(ctx, mediaKey); err != nil {
		return fmt.Errorf("failed to clear media: %w", err)
	}
	return s.seedLocked(ctx)
}

func (s *kvStore) Stats(ctx context.Context) domain.StorageStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var used int64
	if raw, ok, err := s.kv.Get(ctx, eventsKey); err == nil && ok {
		used += int64(len(raw))
	}
	if raw, ok, err := s.kv.Get(ctx, mediaKey); err == nil && ok {
		used += int64(len(raw))
	}
	return domain.StorageStats{
		TotalEvents:      len(s.readEvents(ctx)),
		TotalMedia:       len(s.readMedia(ctx)),
		StorageUsedBytes: used,
	}
}

// readEvents degrades to empty on any failure: missing key, backend error,
// or a value that no longer parses.
func (s *kvStore) readEvents(ctx context.Context) []domain.Event {
	raw, ok, err := s.kv.Get(ctx, eventsKey)
	if err != nil || !ok {
		return nil
	}
	var events []domain.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil
	}
	return events
}

func (s *kvStore) readMedia(ctx context.Context) []domain.MediaItem {
	raw, ok, err := s.kv.Get(ctx, mediaKey)
	if err != nil || !ok {
		return nil
	}
	var media []domain.MediaItem
	if err := json.Unmarshal(raw, &media); err != nil {
		return nil
	}
	return media
}

func (s *kvStore) writeEvents(ctx context.Context, events []domain.Event) error {
	if events == nil {
		events = []domain.Event{}
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	return s.kv.Set(ctx, eventsKey, raw)
}

func (s *kvStore) writeMedia(ctx context.Context, media []domain.MediaItem) error {
	if media == nil {
		media = []domain.MediaItem{}
	}
	raw, err := json.Marshal(media)
	if err != nil {
		return fmt.Errorf("failed to encode media: %w", err)
	}
	return s.kv.Set(ctx, mediaKey, raw)
}
