package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/usecase"
)

type fakeMediaFetcher struct {
	gate  chan struct{}
	calls atomic.Int32

	mu   sync.Mutex
	uris []string
	data map[string][]byte
	errs map[string]error
}

func newFakeMediaFetcher() *fakeMediaFetcher {
	gate := make(chan struct{})
	close(gate)
	return &fakeMediaFetcher{
		gate: gate,
		data: make(map[string][]byte),
		errs: make(map[string]error),
	}
}

func (f *fakeMediaFetcher) MediaURI(venueID string) string {
	return "https://api.example/v1/venue/" + venueID + "/media"
}

func (f *fakeMediaFetcher) FetchMedia(ctx context.Context, uri string) ([]byte, error) {
	f.calls.Add(1)
	<-f.gate

	f.mu.Lock()
	defer f.mu.Unlock()
	f.uris = append(f.uris, uri)
	if err, ok := f.errs[uri]; ok {
		return nil, err
	}
	return f.data[uri], nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func waitState(t *testing.T, cache *usecase.BannerCache, venueID, uri string, want usecase.BannerState) *usecase.BannerImage {
	t.Helper()
	var img *usecase.BannerImage
	require.Eventually(t, func() bool {
		var state usecase.BannerState
		state, img = cache.Lookup(venueID, uri)
		return state == want
	}, time.Second, 5*time.Millisecond)
	return img
}

func TestBannerCache_SingleFlight(t *testing.T) {
	fetcher := newFakeMediaFetcher()
	fetcher.gate = make(chan struct{})
	fetcher.data["https://cdn.example/a.png"] = pngBytes(t, 4, 2)

	cache := usecase.NewBannerCache(fetcher, t.TempDir(), zap.NewNop())
	defer cache.Close()
	placeholder := cache.Placeholder()
	require.NotNil(t, placeholder)

	var wg sync.WaitGroup
	results := make([]*usecase.BannerImage, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Get("a", "https://cdn.example/a.png")
		}(i)
	}
	wg.Wait()

	assert.Same(t, placeholder, results[0])
	assert.Same(t, placeholder, results[1])

	close(fetcher.gate)
	img := waitState(t, cache, "a", "https://cdn.example/a.png", usecase.BannerReady)

	require.NotNil(t, img)
	assert.Equal(t, int32(1), fetcher.calls.Load())
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Image.Bounds())
}

func TestBannerCache_Keys(t *testing.T) {
	fetcher := newFakeMediaFetcher()
	fetcher.data["https://CDN.example/Mixed.png"] = pngBytes(t, 1, 1)
	fetcher.data["https://api.example/v1/venue/v9/media"] = pngBytes(t, 2, 2)

	cache := usecase.NewBannerCache(fetcher, t.TempDir(), zap.NewNop())
	defer cache.Close()

	t.Run("keys compare case-insensitively", func(t *testing.T) {
		cache.Get("x", "https://CDN.example/Mixed.png")
		waitState(t, cache, "x", "https://cdn.example/mixed.png", usecase.BannerReady)
		assert.Equal(t, int32(1), fetcher.calls.Load())
	})

	t.Run("media endpoint without banner uri", func(t *testing.T) {
		cache.Get("v9", "")
		img := waitState(t, cache, "v9", "  ", usecase.BannerReady)
		assert.Equal(t, "https://api.example/v1/venue/v9/media", img.Source)
	})
}

func TestBannerCache_FailuresAreNotRetried(t *testing.T) {
	fetcher := newFakeMediaFetcher()
	fetcher.errs["https://cdn.example/missing.png"] = errors.New("unexpected status 404")
	fetcher.data["https://cdn.example/garbage.png"] = []byte("not an image")

	cache := usecase.NewBannerCache(fetcher, t.TempDir(), zap.NewNop())
	defer cache.Close()

	for _, uri := range []string{"https://cdn.example/missing.png", "https://cdn.example/garbage.png"} {
		cache.Get("a", uri)
		waitState(t, cache, "a", uri, usecase.BannerFailed)
		assert.Nil(t, cache.Get("a", uri))
	}
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestBannerCache_Close(t *testing.T) {
	fetcher := newFakeMediaFetcher()
	fetcher.data["https://cdn.example/a.png"] = pngBytes(t, 1, 1)
	fetcher.data["https://cdn.example/late.png"] = pngBytes(t, 1, 1)

	cache := usecase.NewBannerCache(fetcher, t.TempDir(), zap.NewNop())
	placeholder := cache.Placeholder()

	cache.Get("a", "https://cdn.example/a.png")
	ready := waitState(t, cache, "a", "https://cdn.example/a.png", usecase.BannerReady)

	fetcher.gate = make(chan struct{})
	cache.Get("b", "https://cdn.example/late.png")
	require.Eventually(t, func() bool { return fetcher.calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	cache.Close()
	cache.Close()

	assert.True(t, ready.Released())
	assert.True(t, placeholder.Released())
	assert.Nil(t, cache.Placeholder())

	state, img := cache.Lookup("a", "https://cdn.example/a.png")
	assert.Equal(t, usecase.BannerClosed, state)
	assert.Nil(t, img)

	close(fetcher.gate)
	assert.Nil(t, cache.Get("c", "https://cdn.example/other.png"))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestBannerCache_Placeholder(t *testing.T) {
	t.Run("asset directory wins", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "loading.png"), pngBytes(t, 3, 2), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "loading.png"), pngBytes(t, 5, 5), 0o644))

		cache := usecase.NewBannerCache(newFakeMediaFetcher(), dir, zap.NewNop())
		defer cache.Close()
		assert.Equal(t, image.Rect(0, 0, 3, 2), cache.Placeholder().Image.Bounds())
	})

	t.Run("directory root", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "loading.png"), pngBytes(t, 5, 5), 0o644))

		cache := usecase.NewBannerCache(newFakeMediaFetcher(), dir, zap.NewNop())
		defer cache.Close()
		assert.Equal(t, image.Rect(0, 0, 5, 5), cache.Placeholder().Image.Bounds())
	})

	t.Run("embedded fallback", func(t *testing.T) {
		cache := usecase.NewBannerCache(newFakeMediaFetcher(), t.TempDir(), zap.NewNop())
		defer cache.Close()
		placeholder := cache.Placeholder()
		require.NotNil(t, placeholder)
		assert.Equal(t, image.Rect(0, 0, 32, 32), placeholder.Image.Bounds())
		assert.Equal(t, "image/png", placeholder.ContentType)
	})
}
