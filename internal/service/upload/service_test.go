package upload_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moments-backend/internal/domain"
	"moments-backend/internal/kv"
	"moments-backend/internal/service/upload"
	"moments-backend/internal/store"
	"moments-backend/internal/uploader"
)

// fakeUploader scripts remote-uploader behavior per call.
type fakeUploader struct {
	configured bool
	url        string
	err        error
	calls      int
}

func (f *fakeUploader) IsConfigured() bool {
	return f.configured
}

func (f *fakeUploader) Upload(_ context.Context, asset uploader.Asset, onProgress uploader.ProgressFunc) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if onProgress != nil {
		onProgress(0.5)
		onProgress(1)
	}
	return f.url, nil
}

func newService(t *testing.T, remote uploader.Uploader) (upload.Service, store.Store) {
	t.Helper()
	st := store.New(kv.NewMemory())
	return upload.NewService(st, remote, nil, time.Second), st
}

func imageFile(name string) upload.File {
	return upload.File{Name: name, ContentType: "image/jpeg", Data: []byte("jpeg-bytes-" + name)}
}

func TestProcess_EmbedsLocallyWithoutUploader(t *testing.T) {
	svc, st := newService(t, nil)
	ctx := context.Background()

	items, err := svc.Process(ctx, "e1", "", []upload.File{imageFile("a.jpg")}, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)

	wantPayload := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes-a.jpg"))
	assert.Equal(t, "data:image/jpeg;base64,"+wantPayload, items[0].URL)
	assert.Equal(t, domain.MediaTypeImage, items[0].Type)
	assert.Equal(t, "e1", items[0].EventID)

	stored := st.ListMedia(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, items[0], stored[0])
}

func TestProcess_FallsBackWhenUploaderFails(t *testing.T) {
	remote := &fakeUploader{configured: true, err: errors.New("network down")}
	svc, st := newService(t, remote)
	ctx := context.Background()

	items, err := svc.Process(ctx, "e1", "", []upload.File{imageFile("a.jpg")}, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, 1, remote.calls)
	assert.True(t, strings.HasPrefix(items[0].URL, "data:image/jpeg;base64,"), "got %q", items[0].URL)
	assert.NotEmpty(t, strings.TrimPrefix(items[0].URL, "data:image/jpeg;base64,"))
	assert.Len(t, st.ListMedia(ctx), 1)
}

// hangingUploader never returns until its context expires.
type hangingUploader struct {
	calls int
}

func (h *hangingUploader) IsConfigured() bool {
	return true
}

func (h *hangingUploader) Upload(ctx context.Context, _ uploader.Asset, _ uploader.ProgressFunc) (string, error) {
	h.calls++
	<-ctx.Done()
	return "", ctx.Err()
}

func TestProcess_FallsBackWhenUploaderHangs(t *testing.T) {
	remote := &hangingUploader{}
	st := store.New(kv.NewMemory())
	svc := upload.NewService(st, remote, nil, 100*time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	items, err := svc.Process(ctx, "e1", "", []upload.File{imageFile("a.jpg")}, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, 1, remote.calls)
	assert.True(t, strings.HasPrefix(items[0].URL, "data:image/jpeg;base64,"), "got %q", items[0].URL)
	assert.Less(t, time.Since(start), 5*time.Second, "timeout did not fire")
	assert.Len(t, st.ListMedia(ctx), 1)
}

func TestProcess_UsesRemoteURLOnSuccess(t *testing.T) {
	remote := &fakeUploader{configured: true, url: "https://cdn.example.com/a.jpg"}
	svc, _ := newService(t, remote)

	items, err := svc.Process(context.Background(), "e1", "", []upload.File{imageFile("a.jpg")}, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://cdn.example.com/a.jpg", items[0].URL)
}

func TestProcess_SkipsRemoteWhenNotConfigured(t *testing.T) {
	remote := &fakeUploader{configured: false, url: "https://cdn.example.com/a.jpg"}
	svc, _ := newService(t, remote)

	items, err := svc.Process(context.Background(), "e1", "", []upload.File{imageFile("a.jpg")}, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 0, remote.calls)
	assert.True(t, strings.HasPrefix(items[0].URL, "data:"), "got %q", items[0].URL)
}

func TestProcess_BatchScenario(t *testing.T) {
	svc, st := newService(t, nil)
	ctx := context.Background()

	files := []upload.File{imageFile("one.jpg"), imageFile("two.jpg")}
	items, err := svc.Process(ctx, "e1", "Guest", files, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byEvent := st.ListMediaByEvent(ctx, "e1")
	require.Len(t, byEvent, 2)
	for _, item := range byEvent {
		assert.Equal(t, "e1", item.EventID)
		require.NotNil(t, item.UploaderName)
		assert.Equal(t, "Guest", *item.UploaderName)
	}

	// Sequential prepends: the second file lists first.
	assert.Equal(t, items[1].ID, byEvent[0].ID)
	assert.Equal(t, items[0].ID, byEvent[1].ID)
}

func TestProcess_DerivesTypeFromContentType(t *testing.T) {
	svc, _ := newService(t, nil)

	files := []upload.File{
		{Name: "clip.mp4", ContentType: "video/mp4", Data: []byte("vid")},
		{Name: "pic.png", ContentType: "image/png", Data: []byte("png")},
		{Name: "blob.bin", ContentType: "application/octet-stream", Data: []byte("bin")},
	}
	items, err := svc.Process(context.Background(), "e1", "", files, nil)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, domain.MediaTypeVideo, items[0].Type)
	assert.Equal(t, domain.MediaTypeImage, items[1].Type)
	assert.Equal(t, domain.MediaTypeVideo, items[2].Type)
}

func TestProcess_ReportsProgressPerFile(t *testing.T) {
	remote := &fakeUploader{configured: true, url: "https://cdn.example.com/x"}
	svc, _ := newService(t, remote)

	var updates []upload.Progress
	files := []upload.File{imageFile("one.jpg"), imageFile("two.jpg")}
	_, err := svc.Process(context.Background(), "e1", "", files, func(p upload.Progress) {
		updates = append(updates, p)
	})
	require.NoError(t, err)
	require.NotEmpty(t, updates)

	for _, p := range updates {
		assert.Equal(t, 2, p.Total)
		assert.GreaterOrEqual(t, p.Fraction, 0.0)
		assert.LessOrEqual(t, p.Fraction, 1.0)
	}
	assert.Equal(t, 0, updates[0].Index)
	last := updates[len(updates)-1]
	assert.Equal(t, 1, last.Index)
	assert.Equal(t, 1.0, last.Fraction)
}

func TestProcess_PersistFailureDoesNotAbortBatch(t *testing.T) {
	st := &flakyStore{Store: store.New(kv.NewMemory())}
	svc := upload.NewService(st, nil, nil, time.Second)
	ctx := context.Background()

	files := []upload.File{imageFile("one.jpg"), imageFile("two.jpg"), imageFile("three.jpg")}
	items, err := svc.Process(ctx, "e1", "", files, nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Len(t, st.ListMedia(ctx), 2)
}

// flakyStore fails the second CreateMedia call only.
type flakyStore struct {
	store.Store
	calls int
}

func (f *flakyStore) CreateMedia(ctx context.Context, item domain.MediaItem) error {
	f.calls++
	if f.calls == 2 {
		return errors.New("write lost")
	}
	return f.Store.CreateMedia(ctx, item)
}
