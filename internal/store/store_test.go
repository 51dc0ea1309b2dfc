package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moments-backend/internal/domain"
	"moments-backend/internal/kv"
	"moments-backend/internal/store"
)

// faultyKV wraps the in-memory backend with switchable failures.
type faultyKV struct {
	inner  *kv.Memory
	getErr error
	setErr error
}

func (f *faultyKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.inner.Get(ctx, key)
}

func (f *faultyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.inner.Set(ctx, key, value)
}

func (f *faultyKV) Delete(ctx context.Context, key string) error {
	return f.inner.Delete(ctx, key)
}

func newEmptyStore(t *testing.T) store.Store {
	t.Helper()
	return store.New(kv.NewMemory())
}

func testEvent(id, name string) domain.Event {
	return domain.Event{
		ID:       id,
		Name:     name,
		Date:     "2024-01-01",
		HostName: "H",
	}
}

func testMedia(id, eventID string) domain.MediaItem {
	return domain.MediaItem{
		ID:        id,
		EventID:   eventID,
		URL:       "https://example.com/" + id + ".jpg",
		Type:      domain.MediaTypeImage,
		Timestamp: 1700000000000,
	}
}

func TestStore_CreateAndGetEvent(t *testing.T) {
	s := newEmptyStore(t)
	ctx := context.Background()

	event := testEvent("e1", "Test")
	require.NoError(t, s.CreateEvent(ctx, event))

	got, ok := s.GetEvent(ctx, "e1")
	assert.True(t, ok)
	assert.Equal(t, event, got)
}

func TestStore_ListEventsPreservesInsertionOrder(t *testing.T) {
	s := newEmptyStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.CreateEvent(ctx, testEvent(id, id)))
	}

	events := s.ListEvents(ctx)
	require.Len(t, events, 3)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, "b", events[1].ID)
	assert.Equal(t, "c", events[2].ID)
}

func TestStore_UpdateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces in place preserving position", func(t *testing.T) {
		s := newEmptyStore(t)
		require.NoError(t, s.CreateEvent(ctx, testEvent("e1", "First")))
		require.NoError(t, s.CreateEvent(ctx, testEvent("e2", "Second")))

		updated := testEvent("e1", "Renamed")
		require.NoError(t, s.UpdateEvent(ctx, updated))

		events := s.ListEvents(ctx)
		require.Len(t, events, 2)
		assert.Equal(t, "Renamed", events[0].Name)
		assert.Equal(t, "e2", events[1].ID)
	})

	t.Run("unknown id leaves collection unchanged", func(t *testing.T) {
		s := newEmptyStore(t)
		require.NoError(t, s.CreateEvent(ctx, testEvent("e1", "First")))
		before := s.ListEvents(ctx)

		require.NoError(t, s.UpdateEvent(ctx, testEvent("ghost", "Ghost")))

		assert.Equal(t, before, s.ListEvents(ctx))
	})
}

func TestStore_DeleteEventCascades(t *testing.T) {
	s := newEmptyStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEvent(ctx, testEvent("e1", "Doomed")))
	require.NoError(t, s.CreateEvent(ctx, testEvent("e2", "Survivor")))
	for _, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, s.CreateMedia(ctx, testMedia(id, "e1")))
	}
	require.NoError(t, s.CreateMedia(ctx, testMedia("m4", "e2")))

	require.NoError(t, s.DeleteEvent(ctx, "e1"))

	events := s.ListEvents(ctx)
	require.Len(t, events, 1)
	assert.Equal(t, "e2", events[0].ID)

	media := s.ListMedia(ctx)
	require.Len(t, media, 1)
	assert.Equal(t, "e2", media[0].EventID)
	assert.Equal(t, "m4", media[0].ID)
}

func TestStore_CreateMediaIsLIFO(t *testing.T) {
	s := newEmptyStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateMedia(ctx, testMedia("A", "e1")))
	require.NoError(t, s.CreateMedia(ctx, testMedia("B", "e1")))

	media := s.ListMedia(ctx)
	require.Len(t, media, 2)
	assert.Equal(t, "B", media[0].ID)
	assert.Equal(t, "A", media[1].ID)
}

func TestStore_ListMediaByEvent(t *testing.T) {
	s := newEmptyStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateMedia(ctx, testMedia("m1", "e1")))
	require.NoError(t, s.CreateMedia(ctx, testMedia("m2", "e2")))
	require.NoError(t, s.CreateMedia(ctx, testMedia("m3", "e1")))

	byEvent := s.ListMediaByEvent(ctx, "e1")
	require.Len(t, byEvent, 2)

	// Same relative order as the full listing.
	var filtered []domain.MediaItem
	for _, item := range s.ListMedia(ctx) {
		if item.EventID == "e1" {
			filtered = append(filtered, item)
		}
	}
	assert.Equal(t, filtered, byEvent)
}

func TestStore_UpdateMedia(t *testing.T) {
	s := newEmptyStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateMedia(ctx, testMedia("m1", "e1")))

	item := testMedia("m1", "e1")
	description := "Pure joy!"
	item.AIDescription = &description
	require.NoError(t, s.UpdateMedia(ctx, item))

	media := s.ListMedia(ctx)
	require.Len(t, media, 1)
	require.NotNil(t, media[0].AIDescription)
	assert.Equal(t, "Pure joy!", *media[0].AIDescription)

	// Unknown id is a silent no-op.
	require.NoError(t, s.UpdateMedia(ctx, testMedia("ghost", "e1")))
	assert.Len(t, s.ListMedia(ctx), 1)
}

func TestStore_DeleteMedia(t *testing.T) {
	s := newEmptyStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateMedia(ctx, testMedia("m1", "e1")))
	require.NoError(t, s.CreateMedia(ctx, testMedia("m2", "e1")))

	require.NoError(t, s.DeleteMedia(ctx, "m1"))

	media := s.ListMedia(ctx)
	require.Len(t, media, 1)
	assert.Equal(t, "m2", media[0].ID)
}

func TestStore_InitializeIsIdempotent(t *testing.T) {
	s := newEmptyStore(t)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx))
	seededEvents := s.ListEvents(ctx)
	seededMedia := s.ListMedia(ctx)
	assert.NotEmpty(t, seededEvents)
	assert.NotEmpty(t, seededMedia)

	require.NoError(t, s.Initialize(ctx))
	assert.Equal(t, seededEvents, s.ListEvents(ctx))
	assert.Equal(t, seededMedia, s.ListMedia(ctx))
}

func TestStore_InitializeDoesNotOverwriteExistingData(t *testing.T) {
	s := newEmptyStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEvent(ctx, testEvent("mine", "My Event")))
	require.NoError(t, s.Initialize(ctx))

	events := s.ListEvents(ctx)
	require.Len(t, events, 1)
	assert.Equal(t, "mine", events[0].ID)
}

func TestStore_ResetAllRestoresSeedData(t *testing.T) {
	s := newEmptyStore(t)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.CreateEvent(ctx, testEvent("mine", "My Event")))
	require.NoError(t, s.CreateMedia(ctx, testMedia("m1", "mine")))

	require.NoError(t, s.ResetAll(ctx))

	_, ok := s.GetEvent(ctx, "mine")
	assert.False(t, ok)
	_, ok = s.GetEvent(ctx, "demo-wedding")
	assert.True(t, ok)
	for _, item := range s.ListMedia(ctx) {
		assert.NotEqual(t, "m1", item.ID)
	}
}

// interleavingKV fires a concurrent store mutation once both keys have been
// deleted, then stalls so the mutation has time to contend for the store lock.
type interleavingKV struct {
	inner   *kv.Memory
	once    sync.Once
	deletes int
	mutate  func()
}

func (f *interleavingKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return f.inner.Get(ctx, key)
}

func (f *interleavingKV) Set(ctx context.Context, key string, value []byte) error {
	return f.inner.Set(ctx, key, value)
}

func (f *interleavingKV) Delete(ctx context.Context, key string) error {
	err := f.inner.Delete(ctx, key)
	f.deletes++
	if f.deletes == 2 {
		f.once.Do(func() {
			go f.mutate()
			time.Sleep(50 * time.Millisecond)
		})
	}
	return err
}

func TestStore_ResetAllSeedsAtomically(t *testing.T) {
	ctx := context.Background()
	done := make(chan struct{})

	var s store.Store
	backend := &interleavingKV{inner: kv.NewMemory(), mutate: func() {
		defer close(done)
		_ = s.CreateEvent(ctx, testEvent("intruder", "Intruder"))
	}}
	s = store.New(backend)
	require.NoError(t, s.Initialize(ctx))

	require.NoError(t, s.ResetAll(ctx))
	<-done

	// The concurrent create lands before or after the reset, never inside
	// it: both collections carry the full demo seed either way.
	_, ok := s.GetEvent(ctx, "demo-wedding")
	assert.True(t, ok)
	_, ok = s.GetEvent(ctx, "demo-birthday")
	assert.True(t, ok)
	assert.Len(t, s.ListMedia(ctx), 4)
}

func TestStore_ReadsDegradeToEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt payload", func(t *testing.T) {
		backend := kv.NewMemory()
		require.NoError(t, backend.Set(ctx, "moments:events", []byte("{not json")))
		s := store.New(backend)

		assert.Empty(t, s.ListEvents(ctx))
		_, ok := s.GetEvent(ctx, "anything")
		assert.False(t, ok)
	})

	t.Run("backend failure", func(t *testing.T) {
		backend := &faultyKV{inner: kv.NewMemory(), getErr: errors.New("backend down")}
		s := store.New(backend)

		assert.Empty(t, s.ListEvents(ctx))
		assert.Empty(t, s.ListMedia(ctx))
	})
}

func TestStore_WriteFailuresAreObservable(t *testing.T) {
	ctx := context.Background()
	backend := &faultyKV{inner: kv.NewMemory(), setErr: errors.New("disk full")}
	s := store.New(backend)

	assert.Error(t, s.CreateEvent(ctx, testEvent("e1", "Test")))
	assert.Error(t, s.CreateMedia(ctx, testMedia("m1", "e1")))
}

func TestStore_Stats(t *testing.T) {
	s := newEmptyStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEvent(ctx, testEvent("e1", "Test")))
	require.NoError(t, s.CreateMedia(ctx, testMedia("m1", "e1")))
	require.NoError(t, s.CreateMedia(ctx, testMedia("m2", "e1")))

	stats := s.Stats(ctx)
	assert.Equal(t, 1, stats.TotalEvents)
	assert.Equal(t, 2, stats.TotalMedia)
	assert.Greater(t, stats.StorageUsedBytes, int64(0))
}
