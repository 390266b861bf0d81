package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/domain/repository"
	"github.com/venue-directory/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewPreferenceRepositoryForTest creates a preference repository with test database and logger
func NewPreferenceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PreferenceRepository {
	return postgres.NewPreferenceRepository(NewDBForTest(db, logger))
}
