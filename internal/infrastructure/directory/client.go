package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/venue-directory/internal/config"
	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/domain/repository"
)

const maxErrorBody = 512

var (
	_ repository.CatalogSource = (*Client)(nil)
	_ repository.MediaFetcher  = (*Client)(nil)
)

// Client - клиент удалённого справочника заведений
type Client struct {
	httpClient  *http.Client
	baseURL     *url.URL
	catalogPath string
	logger      *zap.Logger
}

// NewClient создает новый клиент справочника. RequestTimeout 0 - без таймаута.
func NewClient(cfg *config.DirectoryConfig, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid directory base url %q: %w", cfg.BaseURL, err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("directory base url %q must be absolute", cfg.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     base,
		catalogPath: cfg.CatalogPath,
		logger:      logger,
	}, nil
}

// FetchVenues загружает список одобренных заведений
func (c *Client) FetchVenues(ctx context.Context) ([]domain.Venue, error) {
	endpoint, err := c.resolve(c.catalogPath)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetching venue catalog", zap.String("url", endpoint))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var venues []domain.Venue
	if err := json.NewDecoder(body).Decode(&venues); err != nil {
		c.logger.Error("Failed to decode venue catalog", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	venues = c.dropUnidentified(venues)

	c.logger.Debug("Venue catalog fetched", zap.Int("venues", len(venues)))
	return venues, nil
}

// dropUnidentified отбрасывает записи без id: их нельзя адресовать в API
func (c *Client) dropUnidentified(venues []domain.Venue) []domain.Venue {
	kept := venues[:0]
	for _, v := range venues {
		if strings.TrimSpace(v.ID) == "" {
			c.logger.Warn("Skipping venue without id", zap.String("name", v.RawName()))
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

// MediaURI - адрес медиа заведения относительно базового адреса справочника
func (c *Client) MediaURI(venueID string) string {
	ref := &url.URL{Path: "venue/" + venueID + "/media"}
	return c.baseURL.ResolveReference(ref).String()
}

// FetchMedia загружает изображение; относительный адрес разрешается от базового
func (c *Client) FetchMedia(ctx context.Context, uri string) ([]byte, error) {
	endpoint, err := c.resolve(uri)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read media: %w", err)
	}
	return data, nil
}

func (c *Client) resolve(ref string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", ref, err)
	}
	return c.baseURL.ResolveReference(parsed).String(), nil
}

func (c *Client) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Directory request failed", zap.String("url", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("Directory returned error",
			zap.String("url", endpoint),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return resp.Body, nil
}

// StatusError - ответ справочника с кодом вне 2xx
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("directory API error: status %d, body: %s", e.StatusCode, e.Body)
}
