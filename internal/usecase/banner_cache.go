package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/venue-directory/assets"
	"github.com/venue-directory/internal/domain/repository"
)

// 1×1 прозрачный PNG на случай, если других заглушек нет
const transparentPixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8/w8AAgMBAp+N7WAAAAAASUVORK5CYII="

// BannerState - состояние баннера в кеше
type BannerState int

const (
	BannerPending BannerState = iota
	BannerReady
	BannerFailed
	BannerClosed
)

func (s BannerState) String() string {
	switch s {
	case BannerPending:
		return "pending"
	case BannerReady:
		return "ready"
	case BannerFailed:
		return "failed"
	default:
		return "closed"
	}
}

// BannerImage - декодированное изображение вместе с исходными байтами
type BannerImage struct {
	Image       image.Image
	Data        []byte
	ContentType string
	Source      string

	released atomic.Bool
}

// Released сообщает, что кеш больше не владеет изображением
func (b *BannerImage) Released() bool {
	return b.released.Load()
}

func (b *BannerImage) release() {
	b.released.Store(true)
}

// BannerCache - неблокирующий кеш баннеров заведений.
// Каждый ключ загружается не более одного раза; неудача не повторяется.
type BannerCache struct {
	fetcher repository.MediaFetcher
	logger  *zap.Logger

	mu          sync.Mutex
	placeholder *BannerImage
	images      map[string]*BannerImage // nil значение - загрузка не удалась
	pending     map[string]struct{}
	closed      bool
}

// NewBannerCache создает кеш и сразу выбирает заглушку:
// assetDir/assets/loading.png, assetDir/loading.png, встроенный файл, прозрачный пиксель.
// Пустой assetDir - каталог исполняемого файла.
func NewBannerCache(fetcher repository.MediaFetcher, assetDir string, logger *zap.Logger) *BannerCache {
	return &BannerCache{
		fetcher:     fetcher,
		logger:      logger,
		placeholder: loadPlaceholder(assetDir, logger),
		images:      make(map[string]*BannerImage),
		pending:     make(map[string]struct{}),
	}
}

// Get возвращает баннер, заглушку пока идёт загрузка, nil после неудачи или Close.
// Никогда не блокируется на сети.
func (c *BannerCache) Get(venueID, bannerURI string) *BannerImage {
	_, img := c.Lookup(venueID, bannerURI)
	return img
}

// Lookup - то же, что Get, плюс состояние ключа
func (c *BannerCache) Lookup(venueID, bannerURI string) (BannerState, *BannerImage) {
	uri := c.requestURI(venueID, bannerURI)
	key := strings.ToLower(uri)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return BannerClosed, nil
	}

	if img, ok := c.images[key]; ok {
		if img == nil {
			return BannerFailed, nil
		}
		return BannerReady, img
	}

	if _, ok := c.pending[key]; !ok {
		c.pending[key] = struct{}{}
		go c.fetch(key, uri)
	}
	return BannerPending, c.placeholder
}

// Placeholder - общая заглушка, nil после Close
func (c *BannerCache) Placeholder() *BannerImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.placeholder
}

// Close освобождает все изображения и заглушку. Повторный вызов ничего не делает.
func (c *BannerCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	for key, img := range c.images {
		if img != nil {
			img.release()
		}
		delete(c.images, key)
	}
	clear(c.pending)

	if c.placeholder != nil {
		c.placeholder.release()
		c.placeholder = nil
	}
	c.logger.Info("Banner cache closed")
}

func (c *BannerCache) requestURI(venueID, bannerURI string) string {
	if uri := strings.TrimSpace(bannerURI); uri != "" {
		return uri
	}
	return c.fetcher.MediaURI(venueID)
}

func (c *BannerCache) fetch(key, uri string) {
	img, err := c.download(uri)

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.pending, key)

	if c.closed {
		if img != nil {
			img.release()
		}
		return
	}

	if err != nil {
		c.logger.Warn("Banner fetch failed", zap.String("uri", uri), zap.Error(err))
		c.images[key] = nil
		return
	}

	if stale := c.images[key]; stale != nil {
		stale.release()
	}
	c.images[key] = img
	c.logger.Debug("Banner cached",
		zap.String("uri", uri),
		zap.String("content_type", img.ContentType),
		zap.Int("bytes", len(img.Data)),
	)
}

func (c *BannerCache) download(uri string) (*BannerImage, error) {
	data, err := c.fetcher.FetchMedia(context.Background(), uri)
	if err != nil {
		return nil, err
	}
	return decodeBanner(data, uri)
}

func decodeBanner(data []byte, source string) (*BannerImage, error) {
	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &BannerImage{
		Image:       decoded,
		Data:        data,
		ContentType: "image/" + format,
		Source:      source,
	}, nil
}

func loadPlaceholder(assetDir string, logger *zap.Logger) *BannerImage {
	if assetDir == "" {
		if exe, err := os.Executable(); err == nil {
			assetDir = filepath.Dir(exe)
		}
	}

	if assetDir != "" {
		for _, path := range []string{
			filepath.Join(assetDir, "assets", assets.PlaceholderFile),
			filepath.Join(assetDir, assets.PlaceholderFile),
		} {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			img, err := decodeBanner(data, path)
			if err != nil {
				logger.Warn("Skipping undecodable placeholder", zap.String("path", path), zap.Error(err))
				continue
			}
			return img
		}
	}

	if data, err := assets.Files.ReadFile(assets.PlaceholderFile); err == nil {
		if img, err := decodeBanner(data, "embedded:"+assets.PlaceholderFile); err == nil {
			return img
		}
	}

	data, _ := base64.StdEncoding.DecodeString(transparentPixelPNG)
	img, err := decodeBanner(data, "fallback")
	if err != nil {
		logger.Error("Failed to decode fallback placeholder", zap.Error(err))
		return &BannerImage{Image: image.NewNRGBA(image.Rect(0, 0, 1, 1)), Data: data, ContentType: "image/png", Source: "fallback"}
	}
	return img
}
