package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/domain/repository"
	"github.com/venue-directory/internal/pkg/errors"
)

// PreferenceUseCase - избранные и посещённые заведения пользователя.
// Списки хранятся в памяти и сохраняются синхронно после каждого изменения.
type PreferenceUseCase struct {
	repo   repository.PreferenceRepository
	logger *zap.Logger

	mu    sync.RWMutex
	prefs domain.Preferences
}

// NewPreferenceUseCase создает новый PreferenceUseCase
func NewPreferenceUseCase(repo repository.PreferenceRepository, logger *zap.Logger) *PreferenceUseCase {
	return &PreferenceUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Load - чтение сохранённых списков. При ошибке списки остаются пустыми.
func (uc *PreferenceUseCase) Load(ctx context.Context) error {
	prefs, err := uc.repo.Load(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load preferences, starting empty", zap.Error(err))
		return err
	}

	uc.mu.Lock()
	uc.prefs = prefs.Clone()
	uc.mu.Unlock()

	uc.logger.Info("Preferences loaded",
		zap.Int("favorites", len(prefs.FavoriteVenueIDs)),
		zap.Int("visited", len(prefs.VisitedVenueIDs)),
	)
	return nil
}

// Snapshot - копия текущих списков
func (uc *PreferenceUseCase) Snapshot() domain.Preferences {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.prefs.Clone()
}

func (uc *PreferenceUseCase) IsFavorite(venueID string) bool {
	return uc.contains(domain.ListFavorites, venueID)
}

func (uc *PreferenceUseCase) IsVisited(venueID string) bool {
	return uc.contains(domain.ListVisited, venueID)
}

// SetFavorite - добавление или удаление из избранного
func (uc *PreferenceUseCase) SetFavorite(ctx context.Context, venueID string, enabled bool) error {
	return uc.set(ctx, domain.ListFavorites, venueID, enabled)
}

// SetVisited - отметка о посещении
func (uc *PreferenceUseCase) SetVisited(ctx context.Context, venueID string, enabled bool) error {
	return uc.set(ctx, domain.ListVisited, venueID, enabled)
}

func (uc *PreferenceUseCase) contains(list domain.PreferenceList, venueID string) bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.prefs.Contains(list, venueID)
}

func (uc *PreferenceUseCase) set(ctx context.Context, list domain.PreferenceList, venueID string, enabled bool) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	previous := uc.prefs.Clone()
	if !uc.prefs.Set(list, venueID, enabled) {
		return nil
	}

	if err := uc.repo.Save(ctx, uc.prefs.Clone()); err != nil {
		uc.prefs = previous
		uc.logger.Error("Failed to save preferences",
			zap.String("list", string(list)),
			zap.String("venue_id", venueID),
			zap.Error(err),
		)
		return errors.ErrPreferencesWrite.WithDetails(map[string]interface{}{
			"list":     string(list),
			"venue_id": venueID,
		})
	}

	uc.logger.Debug("Preference updated",
		zap.String("list", string(list)),
		zap.String("venue_id", venueID),
		zap.Bool("enabled", enabled),
	)
	return nil
}
