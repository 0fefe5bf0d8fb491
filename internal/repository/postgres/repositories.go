package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Vessel: NewVesselRepository(db, logger),
		Wax:    NewWaxRepository(db, logger),
		Wick:   NewWickRepository(db, logger),
	}
}
