package repository

import (
	"context"

	"github.com/venue-directory/internal/domain"
)

// PreferenceRepository - внешнее хранилище избранного и посещённых заведений
type PreferenceRepository interface {
	// Load читает сохранённые списки; пустые списки, если хранилище ещё не создано
	Load(ctx context.Context) (domain.Preferences, error)

	// Save синхронно записывает оба списка целиком
	Save(ctx context.Context, prefs domain.Preferences) error
}
