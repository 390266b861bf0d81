package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/domain/repository"
	"github.com/venue-directory/internal/pkg/errors"
)

const catalogRefreshKey = "catalog"

// CatalogOptions - настройки кеширования снимка и публикации событий
type CatalogOptions struct {
	CacheTTL    time.Duration
	EventStream string
}

// CatalogState - состояние каталога для опроса потребителями
type CatalogState struct {
	Venues      []domain.Venue
	Loaded      bool
	Loading     bool
	LoadError   error
	LastRefresh time.Time
}

// CatalogUseCase - владелец загруженного набора заведений.
// Записи после загрузки не изменяются, обновление заменяет набор целиком.
type CatalogUseCase struct {
	source  repository.CatalogSource
	cache   repository.CacheRepository
	streams repository.StreamRepository
	opts    CatalogOptions
	logger  *zap.Logger
	now     func() time.Time

	group singleflight.Group

	mu          sync.RWMutex
	venues      []domain.Venue
	byID        map[string]int
	loaded      bool
	loading     bool
	loadErr     error
	lastRefresh time.Time
}

// NewCatalogUseCase создает новый CatalogUseCase. cache и streams могут быть nil.
func NewCatalogUseCase(
	source repository.CatalogSource,
	cache repository.CacheRepository,
	streams repository.StreamRepository,
	opts CatalogOptions,
	logger *zap.Logger,
) *CatalogUseCase {
	if opts.EventStream == "" {
		opts.EventStream = domain.StreamCatalogRefreshed
	}
	return &CatalogUseCase{
		source:  source,
		cache:   cache,
		streams: streams,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Refresh запускает загрузку в фоне и сразу возвращает управление.
// Одновременные вызовы объединяются в одну загрузку.
func (uc *CatalogUseCase) Refresh(ctx context.Context) {
	uc.start(ctx)
}

// Await запускает загрузку (или присоединяется к текущей) и ждёт её завершения
func (uc *CatalogUseCase) Await(ctx context.Context) error {
	done := uc.start(ctx)
	select {
	case res := <-done:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State - текущее состояние каталога
func (uc *CatalogUseCase) State() CatalogState {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return CatalogState{
		Venues:      uc.venues,
		Loaded:      uc.loaded,
		Loading:     uc.loading,
		LoadError:   uc.loadErr,
		LastRefresh: uc.lastRefresh,
	}
}

// Venue - поиск заведения по id
func (uc *CatalogUseCase) Venue(id string) (*domain.Venue, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if !uc.loaded {
		return nil, uc.notLoadedError()
	}
	i, ok := uc.byID[id]
	if !ok {
		return nil, errors.ErrVenueNotFound.WithDetails(map[string]interface{}{"venue_id": id})
	}
	venue := uc.venues[i]
	return &venue, nil
}

// Venues - загруженный набор; ошибка, если каталог ещё ни разу не загружался
func (uc *CatalogUseCase) Venues() ([]domain.Venue, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if !uc.loaded {
		return nil, uc.notLoadedError()
	}
	return uc.venues, nil
}

// Warm заполняет каталог сохранённым снимком, если своих данных ещё нет
func (uc *CatalogUseCase) Warm(ctx context.Context) (bool, error) {
	return uc.applySnapshot(ctx, func() bool { return !uc.loaded })
}

// Sync применяет снимок, сохранённый другим процессом, если он новее текущих данных
func (uc *CatalogUseCase) Sync(ctx context.Context) (bool, error) {
	return uc.applySnapshot(ctx, nil)
}

// applySnapshot читает снимок и применяет его; accept вызывается под блокировкой
func (uc *CatalogUseCase) applySnapshot(ctx context.Context, accept func() bool) (bool, error) {
	if uc.cache == nil {
		return false, nil
	}

	snapshot, err := uc.cache.GetCatalogSnapshot(ctx)
	if err != nil {
		uc.logger.Warn("Failed to read catalog snapshot", zap.Error(err))
		return false, err
	}
	if snapshot == nil {
		return false, nil
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if accept != nil && !accept() {
		return false, nil
	}
	if uc.loaded && !snapshot.FetchedAt.After(uc.lastRefresh) {
		return false, nil
	}
	uc.apply(snapshot.Venues, snapshot.FetchedAt)

	uc.logger.Info("Catalog loaded from snapshot",
		zap.Int("venues", len(snapshot.Venues)),
		zap.Time("fetched_at", snapshot.FetchedAt),
	)
	return true, nil
}

// start регистрирует вызов синхронно, поэтому Refresh и следующий за ним Await
// разделяют одну загрузку. Флаг loading и ключ singleflight меняются под uc.mu:
// вызов, пришедший после сброса флага, начинает новую загрузку.
func (uc *CatalogUseCase) start(ctx context.Context) <-chan singleflight.Result {
	// Загрузка не должна прерываться вместе с запросом, который её запустил
	fetchCtx := context.WithoutCancel(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.loading = true
	return uc.group.DoChan(catalogRefreshKey, func() (interface{}, error) {
		err := uc.refresh(fetchCtx)

		uc.mu.Lock()
		uc.group.Forget(catalogRefreshKey)
		uc.loading = false
		uc.mu.Unlock()

		return nil, err
	})
}

func (uc *CatalogUseCase) refresh(ctx context.Context) error {
	started := uc.now()
	venues, err := uc.source.FetchVenues(ctx)
	if err != nil {
		uc.mu.Lock()
		uc.loadErr = err
		uc.mu.Unlock()

		uc.logger.Error("Catalog refresh failed", zap.Error(err))
		return err
	}

	fetchedAt := uc.now()
	uc.mu.Lock()
	uc.apply(venues, fetchedAt)
	uc.mu.Unlock()

	uc.logger.Info("Catalog refreshed",
		zap.Int("venues", len(venues)),
		zap.Duration("duration", fetchedAt.Sub(started)),
	)

	uc.storeSnapshot(ctx, venues, fetchedAt)
	uc.publishRefreshed(ctx, len(venues), fetchedAt)
	return nil
}

// apply вызывается под блокировкой на запись
func (uc *CatalogUseCase) apply(venues []domain.Venue, fetchedAt time.Time) {
	byID := make(map[string]int, len(venues))
	for i, v := range venues {
		if _, dup := byID[v.ID]; !dup {
			byID[v.ID] = i
		}
	}
	uc.venues = venues
	uc.byID = byID
	uc.loaded = true
	uc.loadErr = nil
	uc.lastRefresh = fetchedAt
}

func (uc *CatalogUseCase) storeSnapshot(ctx context.Context, venues []domain.Venue, fetchedAt time.Time) {
	if uc.cache == nil {
		return
	}
	snapshot := &domain.CatalogSnapshot{Venues: venues, FetchedAt: fetchedAt}
	if err := uc.cache.SetCatalogSnapshot(ctx, snapshot, uc.opts.CacheTTL); err != nil {
		uc.logger.Warn("Failed to store catalog snapshot", zap.Error(err))
	}
}

func (uc *CatalogUseCase) publishRefreshed(ctx context.Context, count int, fetchedAt time.Time) {
	if uc.streams == nil {
		return
	}
	event := domain.CatalogRefreshedEvent{
		RefreshID:   uuid.New(),
		VenueCount:  count,
		RefreshedAt: fetchedAt,
	}
	if err := uc.streams.PublishToStream(ctx, uc.opts.EventStream, event); err != nil {
		uc.logger.Warn("Failed to publish catalog refresh event",
			zap.String("stream", uc.opts.EventStream),
			zap.Error(err),
		)
	}
}

// notLoadedError вызывается под блокировкой на чтение
func (uc *CatalogUseCase) notLoadedError() error {
	if uc.loadErr != nil {
		return errors.ErrCatalogUnavailable.WithDetails(map[string]interface{}{
			"reason": uc.loadErr.Error(),
		})
	}
	return errors.ErrCatalogNotLoaded
}
