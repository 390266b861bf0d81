package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/domain/repository"
)

const catalogSnapshotKey = "catalog:venues"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetCatalogSnapshot получает снимок каталога из кеша
func (r *cacheRepository) GetCatalogSnapshot(ctx context.Context) (*domain.CatalogSnapshot, error) {
	data, err := r.Get(ctx, catalogSnapshotKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var snapshot domain.CatalogSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		r.logger.Error("Failed to unmarshal catalog snapshot", zap.Error(err))
		return nil, fmt.Errorf("unmarshal catalog snapshot: %w", err)
	}

	return &snapshot, nil
}

// SetCatalogSnapshot сохраняет снимок каталога; ttl 0 - без срока жизни
func (r *cacheRepository) SetCatalogSnapshot(ctx context.Context, snapshot *domain.CatalogSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		r.logger.Error("Failed to marshal catalog snapshot", zap.Error(err))
		return fmt.Errorf("marshal catalog snapshot: %w", err)
	}

	return r.Set(ctx, catalogSnapshotKey, data, ttl)
}
