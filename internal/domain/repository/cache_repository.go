package repository

import (
	"context"
	"time"

	"github.com/venue-directory/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; nil без ошибки при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetCatalogSnapshot получает последний сохранённый снимок каталога
	GetCatalogSnapshot(ctx context.Context) (*domain.CatalogSnapshot, error)

	// SetCatalogSnapshot сохраняет снимок каталога
	SetCatalogSnapshot(ctx context.Context, snapshot *domain.CatalogSnapshot, ttl time.Duration) error
}
