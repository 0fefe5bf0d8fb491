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

type vesselRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVesselRepository creates a new vessel repository
func NewVesselRepository(db *sql.DB, logger *zap.Logger) *vesselRepository {
	return &vesselRepository{
		db:     db,
		logger: logger,
	}
}

const vesselColumns = `id, name, size_oz, base_cost_cents, margin_pct, supplier, shopify_product_id, is_active, created_at, updated_at`

func (r *vesselRepository) scan(row interface{ Scan(...interface{}) error }) (*domain.Vessel, error) {
	var v domain.Vessel
	var supplier, productID sql.NullString
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.SizeOz,
		&v.BaseCostCents,
		&v.MarginPct,
		&supplier,
		&productID,
		&v.IsActive,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supplier.Valid {
		v.Supplier = &supplier.String
	}
	if productID.Valid {
		v.ShopifyProductID = &productID.String
	}
	return &v, nil
}

func (r *vesselRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error) {
	query := `SELECT ` + vesselColumns + ` FROM vessels WHERE id = $1`

	vessel, err := r.scan(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "vessel", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get vessel by ID", zap.Error(err))
		return nil, err
	}
	return vessel, nil
}

func (r *vesselRepository) GetByKey(ctx context.Context, name string, sizeOz float64) (*domain.Vessel, error) {
	query := `SELECT ` + vesselColumns + ` FROM vessels WHERE name = $1 AND size_oz = $2`

	vessel, err := r.scan(r.db.QueryRowContext(ctx, query, name, sizeOz))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "vessel", ID: domain.VesselKey(name, sizeOz)}
	}
	if err != nil {
		r.logger.Error("Failed to get vessel by key", zap.Error(err))
		return nil, err
	}
	return vessel, nil
}

func (r *vesselRepository) List(ctx context.Context) ([]*domain.Vessel, error) {
	return r.list(ctx, `SELECT `+vesselColumns+` FROM vessels ORDER BY name, size_oz`)
}

func (r *vesselRepository) ListActive(ctx context.Context) ([]*domain.Vessel, error) {
	return r.list(ctx, `SELECT `+vesselColumns+` FROM vessels WHERE is_active = true ORDER BY name, size_oz`)
}

func (r *vesselRepository) list(ctx context.Context, query string) ([]*domain.Vessel, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list vessels", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var vessels []*domain.Vessel
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		vessels = append(vessels, v)
	}
	return vessels, rows.Err()
}

func (r *vesselRepository) Create(ctx context.Context, vessel *domain.Vessel) error {
	query := `
		INSERT INTO vessels (id, name, size_oz, base_cost_cents, margin_pct, supplier, shopify_product_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now()
	if vessel.ID == uuid.Nil {
		vessel.ID = uuid.New()
	}
	if vessel.CreatedAt.IsZero() {
		vessel.CreatedAt = now
	}
	if vessel.UpdatedAt.IsZero() {
		vessel.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		vessel.ID,
		vessel.Name,
		vessel.SizeOz,
		vessel.BaseCostCents,
		vessel.MarginPct,
		vessel.Supplier,
		vessel.ShopifyProductID,
		vessel.IsActive,
		vessel.CreatedAt,
		vessel.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &errors.ErrConflict{Message: "vessel already exists: " + vessel.Key()}
		}
		r.logger.Error("Failed to create vessel", zap.Error(err))
		return err
	}
	return nil
}

func (r *vesselRepository) Update(ctx context.Context, vessel *domain.Vessel) error {
	query := `
		UPDATE vessels
		SET base_cost_cents = $2, margin_pct = $3, supplier = $4, updated_at = $5
		WHERE id = $1
	`

	vessel.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		vessel.ID,
		vessel.BaseCostCents,
		vessel.MarginPct,
		vessel.Supplier,
		vessel.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update vessel", zap.Error(err))
		return err
	}
	return nil
}

func (r *vesselRepository) UpdateBaseCost(ctx context.Context, id uuid.UUID, baseCostCents int64) error {
	query := `UPDATE vessels SET base_cost_cents = $2, updated_at = $3 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, baseCostCents, time.Now())
	if err != nil {
		r.logger.Error("Failed to update vessel base cost", zap.Error(err))
		return err
	}
	return nil
}

func (r *vesselRepository) UpdateShopifyProductID(ctx context.Context, id uuid.UUID, productID string) error {
	query := `UPDATE vessels SET shopify_product_id = $2, updated_at = $3 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, productID, time.Now())
	if err != nil {
		r.logger.Error("Failed to update vessel shopify product ID", zap.Error(err))
		return err
	}
	return nil
}

func (r *vesselRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE vessels SET is_active = $2, updated_at = $3 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, active, time.Now())
	if err != nil {
		r.logger.Error("Failed to set vessel active flag", zap.Error(err))
		return err
	}
	return nil
}
