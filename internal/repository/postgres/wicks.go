package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/pkg/errors"
)

type wickRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWickRepository creates a new wick repository
func NewWickRepository(db *sql.DB, logger *zap.Logger) *wickRepository {
	return &wickRepository{
		db:     db,
		logger: logger,
	}
}

func (r *wickRepository) GetByName(ctx context.Context, name string) (*domain.Wick, error) {
	query := `
		SELECT id, name, cost_cents, is_active, created_at, updated_at
		FROM wicks
		WHERE name = $1
	`

	var wick domain.Wick
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&wick.ID,
		&wick.Name,
		&wick.CostCents,
		&wick.IsActive,
		&wick.CreatedAt,
		&wick.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "wick", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get wick by name", zap.Error(err))
		return nil, err
	}
	return &wick, nil
}

func (r *wickRepository) List(ctx context.Context) ([]*domain.Wick, error) {
	return r.list(ctx, `
		SELECT id, name, cost_cents, is_active, created_at, updated_at
		FROM wicks ORDER BY created_at, name
	`)
}

func (r *wickRepository) ListActive(ctx context.Context) ([]*domain.Wick, error) {
	return r.list(ctx, `
		SELECT id, name, cost_cents, is_active, created_at, updated_at
		FROM wicks WHERE is_active = true ORDER BY created_at, name
	`)
}

func (r *wickRepository) list(ctx context.Context, query string) ([]*domain.Wick, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list wicks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var wicks []*domain.Wick
	for rows.Next() {
		var wick domain.Wick
		if err := rows.Scan(&wick.ID, &wick.Name, &wick.CostCents, &wick.IsActive, &wick.CreatedAt, &wick.UpdatedAt); err != nil {
			return nil, err
		}
		wicks = append(wicks, &wick)
	}
	return wicks, rows.Err()
}

func (r *wickRepository) Create(ctx context.Context, wick *domain.Wick) error {
	query := `
		INSERT INTO wicks (id, name, cost_cents, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now()
	if wick.ID == uuid.Nil {
		wick.ID = uuid.New()
	}
	if wick.CreatedAt.IsZero() {
		wick.CreatedAt = now
	}
	if wick.UpdatedAt.IsZero() {
		wick.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		wick.ID,
		wick.Name,
		wick.CostCents,
		wick.IsActive,
		wick.CreatedAt,
		wick.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &errors.ErrConflict{Message: "wick already exists: " + wick.Name}
		}
		r.logger.Error("Failed to create wick", zap.Error(err))
		return err
	}
	return nil
}

func (r *wickRepository) UpdateCost(ctx context.Context, name string, costCents int64) error {
	query := `UPDATE wicks SET cost_cents = $2, updated_at = $3 WHERE name = $1`

	res, err := r.db.ExecContext(ctx, query, name, costCents, time.Now())
	if err != nil {
		r.logger.Error("Failed to update wick cost", zap.Error(err))
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errors.ErrNotFound{Resource: "wick", ID: name}
	}
	return nil
}

func (r *wickRepository) SetActive(ctx context.Context, name string, active bool) error {
	query := `UPDATE wicks SET is_active = $2, updated_at = $3 WHERE name = $1`

	res, err := r.db.ExecContext(ctx, query, name, active, time.Now())
	if err != nil {
		r.logger.Error("Failed to set wick active flag", zap.Error(err))
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errors.ErrNotFound{Resource: "wick", ID: name}
	}
	return nil
}
