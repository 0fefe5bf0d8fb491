package service

import (
	"context"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
)

// CatalogSync is the engine's boundary to the external product catalog.
// The engine never mutates the catalog except through an explicit,
// operator-confirmed apply or a vessel sync; batched mutations report
// per-item failures instead of aborting sibling items.
type CatalogSync interface {
	FindProductByHandle(ctx context.Context, handle string) (*domain.CatalogProduct, error)
	CreateProduct(ctx context.Context, title, handle string) (string, error)
	SetMetafields(ctx context.Context, ownerID string, metafields []domain.Metafield) error
	GetProductOptions(ctx context.Context, productID string) ([]domain.ProductOption, error)
	CreateProductOptions(ctx context.Context, productID string, options []domain.ProductOption, autoGenerateVariants bool) error
	ListVariants(ctx context.Context, productID string) ([]domain.CatalogVariant, error)
	BulkCreateVariants(ctx context.Context, productID string, inputs []domain.NewVariantInput) (*domain.BatchResult, error)
	BulkUpdateVariantPrices(ctx context.Context, productID string, updates []domain.PriceUpdateInput) (*domain.BatchResult, error)
	ActivateInventory(ctx context.Context, inventoryItemID, locationID string, quantity int) error
	GetPrimaryLocationID(ctx context.Context) (string, error)
}
