package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/domain/repository"
)

type preferenceRepository struct {
	path   string
	logger *zap.Logger
}

// NewPreferenceRepository создаёт YAML-хранилище избранного и посещённых заведений
func NewPreferenceRepository(path string, logger *zap.Logger) repository.PreferenceRepository {
	return &preferenceRepository{
		path:   path,
		logger: logger,
	}
}

// Load читает файл; отсутствующий файл означает пустые списки
func (r *preferenceRepository) Load(ctx context.Context) (domain.Preferences, error) {
	var prefs domain.Preferences

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Info("Preferences file not found, starting empty", zap.String("path", r.path))
			return prefs, nil
		}
		return prefs, fmt.Errorf("failed to read preferences: %w", err)
	}

	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to parse preferences %s: %w", r.path, err)
	}

	return prefs, nil
}

// Save атомарно перезаписывает файл: временный файл в том же каталоге, затем rename
func (r *preferenceRepository) Save(ctx context.Context, prefs domain.Preferences) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create preferences dir: %w", err)
	}

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".preferences-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close preferences: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to chmod preferences: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace preferences: %w", err)
	}

	r.logger.Debug("Preferences saved",
		zap.String("path", r.path),
		zap.Int("favorites", len(prefs.FavoriteVenueIDs)),
		zap.Int("visited", len(prefs.VisitedVenueIDs)))

	return nil
}
