package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/config"
	httpDelivery "github.com/venue-directory/internal/delivery/http"
	"github.com/venue-directory/internal/delivery/http/handler"
	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/repository/dataset"
	"github.com/venue-directory/internal/repository/file"
	"github.com/venue-directory/internal/usecase"
)

type staticSource struct {
	venues []domain.Venue
	err    error
}

func (s staticSource) FetchVenues(ctx context.Context) ([]domain.Venue, error) {
	return s.venues, s.err
}

type recordingNavigator struct {
	mu        sync.Mutex
	available bool
	args      []string
}

func (n *recordingNavigator) Available(ctx context.Context) bool {
	return n.available
}

func (n *recordingNavigator) Dispatch(ctx context.Context, venueID, arguments string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.args = append(n.args, arguments)
	return nil
}

type stubMediaFetcher struct {
	gate chan struct{}
	data []byte
}

func (f *stubMediaFetcher) MediaURI(venueID string) string {
	return "https://api.example/v1/venue/" + venueID + "/media"
}

func (f *stubMediaFetcher) FetchMedia(ctx context.Context, uri string) ([]byte, error) {
	<-f.gate
	if f.data == nil {
		return nil, errors.New("404 Not Found")
	}
	return f.data, nil
}

type testEnv struct {
	server    *httpDelivery.Server
	navigator *recordingNavigator
	media     *stubMediaFetcher
}

func strPtr(s string) *string { return &s }

func testVenues() []domain.Venue {
	return []domain.Venue{
		{
			ID:   "a",
			Name: strPtr("Moonlit Lounge"),
			SFW:  true,
			Tags: []string{"Bar", "Music"},
			Location: &domain.Location{
				DataCenter: strPtr("Crystal"),
				World:      strPtr("Balmung"),
				District:   strPtr("Mist"),
				Ward:       3,
				Plot:       7,
			},
			Description: []string{"Live music https://example.com/events"},
		},
		{
			ID:       "b",
			Name:     strPtr("Crimson Den"),
			SFW:      false,
			Location: &domain.Location{DataCenter: strPtr("Light"), World: strPtr("Odin")},
		},
		{
			ID:   "nowhere",
			Name: strPtr("Nowhere"),
			SFW:  true,
		},
	}
}

func newTestEnv(t *testing.T, source staticSource, load bool) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	catalogUC := usecase.NewCatalogUseCase(source, nil, nil, usecase.CatalogOptions{}, logger)
	if load {
		require.NoError(t, catalogUC.Await(context.Background()))
	}

	sizes := usecase.NewPlotSizeIndex(dataset.NewSheetRepository("", logger), logger)
	prefsUC := usecase.NewPreferenceUseCase(file.NewPreferenceRepository(filepath.Join(t.TempDir(), "prefs.yaml"), logger), logger)
	require.NoError(t, prefsUC.Load(context.Background()))

	venueUC := usecase.NewVenueUseCase(
		catalogUC,
		usecase.NewFilterUseCase(sizes),
		sizes,
		usecase.NewScheduleResolver(time.UTC, "15:04"),
		prefsUC,
		logger,
	)

	navigator := &recordingNavigator{available: true}
	navigationUC := usecase.NewNavigationUseCase(catalogUC, navigator, logger)

	gate := make(chan struct{})
	media := &stubMediaFetcher{gate: gate, data: pngBytes(t)}
	banners := usecase.NewBannerCache(media, t.TempDir(), logger)
	t.Cleanup(banners.Close)

	server := httpDelivery.NewServer(&config.Config{}, logger, httpDelivery.Handlers{
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"redis": func(ctx context.Context) error { return nil },
		}, logger),
		Catalog:    handler.NewCatalogHandler(catalogUC, logger),
		Venue:      handler.NewVenueHandler(venueUC, navigationUC, logger),
		Banner:     handler.NewBannerHandler(catalogUC, banners, logger),
		Preference: handler.NewPreferenceHandler(catalogUC, prefsUC, logger),
		Navigation: handler.NewNavigationHandler(navigationUC, logger),
	})

	return &testEnv{server: server, navigator: navigator, media: media}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 3))))
	return buf.Bytes()
}

func (e *testEnv) do(t *testing.T, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.server.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, body []byte, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	if data != nil && env.Data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestServer_Health(t *testing.T) {
	env := newTestEnv(t, staticSource{venues: testVenues()}, true)

	resp, body := env.do(t, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"redis":"healthy"`)
}

func TestServer_CatalogNotLoaded(t *testing.T) {
	t.Run("never loaded", func(t *testing.T) {
		env := newTestEnv(t, staticSource{venues: testVenues()}, false)

		resp, body := env.do(t, http.MethodGet, "/api/v1/venues", "")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "CATALOG_NOT_LOADED", decode(t, body, nil).Error.Code)

		resp, body = env.do(t, http.MethodGet, "/api/v1/catalog", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var state struct {
			Loaded bool `json:"loaded"`
		}
		decode(t, body, &state)
		assert.False(t, state.Loaded)
	})

	t.Run("load failed", func(t *testing.T) {
		env := newTestEnv(t, staticSource{err: errors.New("directory returned 500")}, false)

		resp, _ := env.do(t, http.MethodPost, "/api/v1/catalog/refresh", "")
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)

		require.Eventually(t, func() bool {
			resp, _ := env.do(t, http.MethodGet, "/api/v1/venues", "")
			return resp.StatusCode == http.StatusBadGateway
		}, time.Second, 10*time.Millisecond)

		_, body := env.do(t, http.MethodGet, "/api/v1/venues", "")
		env2 := decode(t, body, nil)
		assert.Equal(t, "CATALOG_UNAVAILABLE", env2.Error.Code)
		assert.Equal(t, "directory returned 500", env2.Error.Details["reason"])
	})
}

func TestServer_ListVenues(t *testing.T) {
	env := newTestEnv(t, staticSource{venues: testVenues()}, true)

	t.Run("nothing open by default", func(t *testing.T) {
		resp, body := env.do(t, http.MethodGet, "/api/v1/venues", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var list struct {
			Total   int    `json:"total"`
			Visible int    `json:"visible"`
			Message string `json:"message"`
		}
		decode(t, body, &list)
		assert.Equal(t, 3, list.Total)
		assert.Equal(t, 0, list.Visible)
		assert.NotEmpty(t, list.Message)
	})

	t.Run("open_now off, sorted by name", func(t *testing.T) {
		resp, body := env.do(t, http.MethodGet, "/api/v1/venues?open_now=false&sort=name:asc", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var list struct {
			Venues []struct {
				ID      string `json:"id"`
				Name    string `json:"name"`
				Address string `json:"address"`
			} `json:"venues"`
		}
		decode(t, body, &list)
		require.Len(t, list.Venues, 3)
		assert.Equal(t, "Crimson Den", list.Venues[0].Name)
		assert.Equal(t, "Moonlit Lounge", list.Venues[1].Name)
		assert.Equal(t, "Nowhere", list.Venues[2].Name)
	})

	t.Run("every size toggle off filters nothing", func(t *testing.T) {
		resp, body := env.do(t, http.MethodGet,
			"/api/v1/venues?open_now=false&size_apartment=false&size_small=false&size_medium=false&size_large=false", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var list struct {
			Venues  []struct{} `json:"venues"`
			Visible int        `json:"visible"`
		}
		decode(t, body, &list)
		assert.NotEmpty(t, list.Venues)
		assert.Equal(t, 3, list.Visible)
	})

	t.Run("sfw only", func(t *testing.T) {
		_, body := env.do(t, http.MethodGet, "/api/v1/venues?open_now=false&sfw_only=true", "")
		var list struct {
			Visible int `json:"visible"`
		}
		decode(t, body, &list)
		assert.Equal(t, 2, list.Visible)
	})

	t.Run("invalid sort", func(t *testing.T) {
		resp, body := env.do(t, http.MethodGet, "/api/v1/venues?sort=rating:asc", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_REQUEST", decode(t, body, nil).Error.Code)
	})
}

func TestServer_VenueDetailAndRoutes(t *testing.T) {
	env := newTestEnv(t, staticSource{venues: testVenues()}, true)

	t.Run("detail", func(t *testing.T) {
		resp, body := env.do(t, http.MethodGet, "/api/v1/venues/a", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var detail struct {
			Name   string `json:"name"`
			Routes []struct {
				DisplayText string `json:"display_text"`
			} `json:"routes"`
			Tags []string `json:"tags"`
		}
		decode(t, body, &detail)
		assert.Equal(t, "Moonlit Lounge", detail.Name)
		assert.Equal(t, []string{"Bar", "Music"}, detail.Tags)
		assert.NotEmpty(t, detail.Routes)
	})

	t.Run("unknown venue", func(t *testing.T) {
		resp, body := env.do(t, http.MethodGet, "/api/v1/venues/zzz", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "VENUE_NOT_FOUND", decode(t, body, nil).Error.Code)
	})

	t.Run("routes", func(t *testing.T) {
		resp, body := env.do(t, http.MethodGet, "/api/v1/venues/a/routes", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var routes struct {
			Routes              []json.RawMessage `json:"routes"`
			NavigationAvailable bool              `json:"navigation_available"`
		}
		decode(t, body, &routes)
		assert.NotEmpty(t, routes.Routes)
		assert.True(t, routes.NavigationAvailable)
	})
}

func TestServer_Options(t *testing.T) {
	env := newTestEnv(t, staticSource{venues: testVenues()}, true)

	resp, body := env.do(t, http.MethodGet, "/api/v1/options?region=North%20America", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var options struct {
		Regions     []string `json:"regions"`
		DataCenters []string `json:"data_centers"`
		Worlds      []string `json:"worlds"`
	}
	decode(t, body, &options)
	assert.Equal(t, usecase.AnyOption, options.Regions[0])
	assert.Equal(t, []string{usecase.AnyOption, "Crystal"}, options.DataCenters)
	assert.Equal(t, usecase.AnyOption, options.Worlds[0])
}

func TestServer_Preferences(t *testing.T) {
	env := newTestEnv(t, staticSource{venues: testVenues()}, true)

	resp, body := env.do(t, http.MethodPut, "/api/v1/venues/a/favorite", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pref struct {
		Favorite bool `json:"favorite"`
		Visited  bool `json:"visited"`
	}
	decode(t, body, &pref)
	assert.True(t, pref.Favorite)
	assert.False(t, pref.Visited)

	_, body = env.do(t, http.MethodGet, "/api/v1/venues?open_now=false&favorites=true", "")
	var list struct {
		Visible int `json:"visible"`
	}
	decode(t, body, &list)
	assert.Equal(t, 1, list.Visible)

	resp, body = env.do(t, http.MethodDelete, "/api/v1/venues/a/favorite", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, body, &pref)
	assert.False(t, pref.Favorite)

	resp, _ = env.do(t, http.MethodPut, "/api/v1/venues/b/visited", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPut, "/api/v1/venues/zzz/visited", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/v1/venues/zzz/visited", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "clearing an unknown id is a no-op")
}

func TestServer_Visit(t *testing.T) {
	env := newTestEnv(t, staticSource{venues: testVenues()}, true)

	t.Run("out of range index uses first route", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodPost, "/api/v1/venues/a/visit", `{"route_index":9}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, env.navigator.args, 1)
		assert.Contains(t, env.navigator.args[0], "Balmung")
	})

	t.Run("empty body", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodPost, "/api/v1/venues/a/visit", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("negative index rejected", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodPost, "/api/v1/venues/a/visit", `{"route_index":-1}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("no destination", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/v1/venues/nowhere/visit", "")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "Destination is empty.", decode(t, body, nil).Error.Message)
	})

	t.Run("integration unavailable", func(t *testing.T) {
		env.navigator.available = false
		defer func() { env.navigator.available = true }()

		resp, body := env.do(t, http.MethodPost, "/api/v1/venues/a/visit", "")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "Navigation integration is not available.", decode(t, body, nil).Error.Message)
	})
}

func TestServer_Banner(t *testing.T) {
	env := newTestEnv(t, staticSource{venues: testVenues()}, true)

	resp, _ := env.do(t, http.MethodGet, "/api/v1/venues/a/banner", "")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode, "placeholder while the fetch is pending")
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	close(env.media.gate)

	var body []byte
	require.Eventually(t, func() bool {
		resp, body = env.do(t, http.MethodGet, "/api/v1/venues/a/banner", "")
		return resp.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, env.media.data, body)

	resp, _ = env.do(t, http.MethodGet, "/api/v1/venues/zzz/banner", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
