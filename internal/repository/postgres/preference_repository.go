package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/domain/repository"
)

type preferenceRepository struct {
	db *DB
}

type preferenceRow struct {
	ListName string `db:"list_name"`
	VenueID  string `db:"venue_id"`
}

// NewPreferenceRepository - хранилище избранного и посещённого в PostgreSQL
func NewPreferenceRepository(db *DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

// Load - чтение списков в порядке добавления; пустая база даёт пустые списки
func (r *preferenceRepository) Load(ctx context.Context) (domain.Preferences, error) {
	var prefs domain.Preferences

	var rows []preferenceRow
	query := `
		SELECT list_name, venue_id
		FROM venue_preferences
		ORDER BY list_name, position
	`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return prefs, fmt.Errorf("failed to load preferences: %w", err)
	}

	for _, row := range rows {
		switch domain.PreferenceList(row.ListName) {
		case domain.ListFavorites:
			prefs.FavoriteVenueIDs = append(prefs.FavoriteVenueIDs, row.VenueID)
		case domain.ListVisited:
			prefs.VisitedVenueIDs = append(prefs.VisitedVenueIDs, row.VenueID)
		}
	}

	var versions []int
	if err := r.db.SelectContext(ctx, &versions, `SELECT version FROM preference_meta WHERE id = 1`); err != nil {
		return prefs, fmt.Errorf("failed to load preference version: %w", err)
	}
	if len(versions) > 0 {
		prefs.Version = versions[0]
	}

	return prefs, nil
}

// Save - полная замена обоих списков в одной транзакции
func (r *preferenceRepository) Save(ctx context.Context, prefs domain.Preferences) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.db.logger.Warn("Failed to rollback preference save", zap.Error(rbErr))
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM venue_preferences`); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}

	insert := `
		INSERT INTO venue_preferences (list_name, venue_id, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (list_name, venue_id) DO NOTHING
	`
	lists := []struct {
		name domain.PreferenceList
		ids  []string
	}{
		{domain.ListFavorites, prefs.FavoriteVenueIDs},
		{domain.ListVisited, prefs.VisitedVenueIDs},
	}
	for _, list := range lists {
		for i, id := range list.ids {
			if _, err = tx.ExecContext(ctx, insert, string(list.name), id, i); err != nil {
				return fmt.Errorf("failed to insert %s entry: %w", list.name, err)
			}
		}
	}

	upsert := `
		INSERT INTO preference_meta (id, version, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET version = EXCLUDED.version, updated_at = NOW()
	`
	if _, err = tx.ExecContext(ctx, upsert, prefs.Version); err != nil {
		return fmt.Errorf("failed to store preference version: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preferences: %w", err)
	}

	r.db.logger.Debug("Preferences saved",
		zap.Int("favorites", len(prefs.FavoriteVenueIDs)),
		zap.Int("visited", len(prefs.VisitedVenueIDs)),
	)
	return nil
}
