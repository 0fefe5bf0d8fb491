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

type waxRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWaxRepository creates a new wax repository
func NewWaxRepository(db *sql.DB, logger *zap.Logger) *waxRepository {
	return &waxRepository{
		db:     db,
		logger: logger,
	}
}

func (r *waxRepository) GetByName(ctx context.Context, name string) (*domain.Wax, error) {
	query := `
		SELECT id, name, price_per_oz_cents, is_active, created_at, updated_at
		FROM waxes
		WHERE name = $1
	`

	var wax domain.Wax
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&wax.ID,
		&wax.Name,
		&wax.PricePerOzCents,
		&wax.IsActive,
		&wax.CreatedAt,
		&wax.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "wax", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get wax by name", zap.Error(err))
		return nil, err
	}
	return &wax, nil
}

func (r *waxRepository) List(ctx context.Context) ([]*domain.Wax, error) {
	return r.list(ctx, `
		SELECT id, name, price_per_oz_cents, is_active, created_at, updated_at
		FROM waxes ORDER BY created_at, name
	`)
}

func (r *waxRepository) ListActive(ctx context.Context) ([]*domain.Wax, error) {
	return r.list(ctx, `
		SELECT id, name, price_per_oz_cents, is_active, created_at, updated_at
		FROM waxes WHERE is_active = true ORDER BY created_at, name
	`)
}

func (r *waxRepository) list(ctx context.Context, query string) ([]*domain.Wax, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list waxes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var waxes []*domain.Wax
	for rows.Next() {
		var wax domain.Wax
		if err := rows.Scan(&wax.ID, &wax.Name, &wax.PricePerOzCents, &wax.IsActive, &wax.CreatedAt, &wax.UpdatedAt); err != nil {
			return nil, err
		}
		waxes = append(waxes, &wax)
	}
	return waxes, rows.Err()
}

func (r *waxRepository) Create(ctx context.Context, wax *domain.Wax) error {
	query := `
		INSERT INTO waxes (id, name, price_per_oz_cents, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now()
	if wax.ID == uuid.Nil {
		wax.ID = uuid.New()
	}
	if wax.CreatedAt.IsZero() {
		wax.CreatedAt = now
	}
	if wax.UpdatedAt.IsZero() {
		wax.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		wax.ID,
		wax.Name,
		wax.PricePerOzCents,
		wax.IsActive,
		wax.CreatedAt,
		wax.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &errors.ErrConflict{Message: "wax already exists: " + wax.Name}
		}
		r.logger.Error("Failed to create wax", zap.Error(err))
		return err
	}
	return nil
}

func (r *waxRepository) UpdatePrice(ctx context.Context, name string, pricePerOzCents int64) error {
	query := `UPDATE waxes SET price_per_oz_cents = $2, updated_at = $3 WHERE name = $1`

	res, err := r.db.ExecContext(ctx, query, name, pricePerOzCents, time.Now())
	if err != nil {
		r.logger.Error("Failed to update wax price", zap.Error(err))
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errors.ErrNotFound{Resource: "wax", ID: name}
	}
	return nil
}

func (r *waxRepository) SetActive(ctx context.Context, name string, active bool) error {
	query := `UPDATE waxes SET is_active = $2, updated_at = $3 WHERE name = $1`

	res, err := r.db.ExecContext(ctx, query, name, active, time.Now())
	if err != nil {
		r.logger.Error("Failed to set wax active flag", zap.Error(err))
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errors.ErrNotFound{Resource: "wax", ID: name}
	}
	return nil
}
