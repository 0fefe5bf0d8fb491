package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
)

// VesselRepository defines vessel data access methods
type VesselRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error)
	GetByKey(ctx context.Context, name string, sizeOz float64) (*domain.Vessel, error)
	List(ctx context.Context) ([]*domain.Vessel, error)
	ListActive(ctx context.Context) ([]*domain.Vessel, error)
	Create(ctx context.Context, vessel *domain.Vessel) error
	Update(ctx context.Context, vessel *domain.Vessel) error
	UpdateBaseCost(ctx context.Context, id uuid.UUID, baseCostCents int64) error
	UpdateShopifyProductID(ctx context.Context, id uuid.UUID, productID string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// WaxRepository defines wax data access methods
type WaxRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Wax, error)
	List(ctx context.Context) ([]*domain.Wax, error)
	ListActive(ctx context.Context) ([]*domain.Wax, error)
	Create(ctx context.Context, wax *domain.Wax) error
	UpdatePrice(ctx context.Context, name string, pricePerOzCents int64) error
	SetActive(ctx context.Context, name string, active bool) error
}

// WickRepository defines wick data access methods
type WickRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Wick, error)
	List(ctx context.Context) ([]*domain.Wick, error)
	ListActive(ctx context.Context) ([]*domain.Wick, error)
	Create(ctx context.Context, wick *domain.Wick) error
	UpdateCost(ctx context.Context, name string, costCents int64) error
	SetActive(ctx context.Context, name string, active bool) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Vessel VesselRepository
	Wax    WaxRepository
	Wick   WickRepository
}
