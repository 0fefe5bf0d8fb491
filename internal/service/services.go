package service

import (
	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository"
)

// Services bundles the engine's service layer. Built once at startup and
// shared: the pricing service holds the pending preview between the
// preview and apply calls, so it must not be reconstructed per request.
type Services struct {
	Variants *variantService
	Pricing  *pricingService
	Vessels  *vesselService
}

// NewServices wires the service layer against a repository set and a
// catalog boundary.
func NewServices(repos *repository.Repositories, catalog CatalogSync, cfg config.PricingConfig, logger *zap.Logger) *Services {
	variants := NewVariantService(repos, catalog, cfg, logger)
	return &Services{
		Variants: variants,
		Pricing:  NewPricingService(repos, catalog, cfg, logger),
		Vessels:  NewVesselService(repos, catalog, variants, cfg, logger),
	}
}
