package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/pricing"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/pkg/errors"
)

type vesselService struct {
	repos    *repository.Repositories
	catalog  CatalogSync
	variants *variantService
	cfg      config.PricingConfig
	logger   *zap.Logger
}

// NewVesselService creates a new vessel registration service
func NewVesselService(repos *repository.Repositories, catalog CatalogSync, variants *variantService, cfg config.PricingConfig, logger *zap.Logger) *vesselService {
	return &vesselService{
		repos:    repos,
		catalog:  catalog,
		variants: variants,
		cfg:      cfg,
		logger:   logger,
	}
}

// NormalizeVesselName title-cases each whitespace-separated token, so
// "mason  jar" and "Mason Jar" resolve to the same identity key.
func NormalizeVesselName(raw string) string {
	fields := strings.Fields(raw)
	for i, f := range fields {
		lower := strings.ToLower(f)
		fields[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(fields, " ")
}

// CheckAvailable reports whether a vessel identity key is free. Backs the
// debounced live validation in the admin UI as well as the submit-time
// check.
func (s *vesselService) CheckAvailable(ctx context.Context, rawName string, sizeOz int) (bool, string, error) {
	name := NormalizeVesselName(rawName)
	key := domain.VesselKey(name, float64(sizeOz))
	_, err := s.repos.Vessel.GetByKey(ctx, name, float64(sizeOz))
	if err == nil {
		return false, key, nil
	}
	if _, isNotFound := err.(*errors.ErrNotFound); isNotFound {
		return true, key, nil
	}
	return false, key, err
}

// Register creates a vessel and provisions it in the external catalog
// with its full wax x wick variant matrix, vessel metadata, and inventory
// tracking at the default location. Inventory activation failures are
// reported per-variant; they never roll back the vessel or its variants.
func (s *vesselService) Register(ctx context.Context, req *RegisterVesselRequest) (*domain.Vessel, *domain.SyncResult, error) {
	name := NormalizeVesselName(req.Name)
	if err := validateRegistration(name, req); err != nil {
		return nil, nil, err
	}

	// Duplicate check before any catalog call.
	available, key, err := s.CheckAvailable(ctx, req.Name, req.SizeOz)
	if err != nil {
		return nil, nil, err
	}
	if !available {
		return nil, nil, &errors.ErrConflict{Message: "vessel already exists: " + key}
	}

	baseCostCents := decimal.NewFromFloat(req.BaseCostDollars).Shift(2).Round(0).IntPart()
	vessel := &domain.Vessel{
		Name:          name,
		SizeOz:        float64(req.SizeOz),
		BaseCostCents: baseCostCents,
		MarginPct:     req.MarginPct,
		Supplier:      req.Supplier,
		IsActive:      true,
	}
	if err := s.repos.Vessel.Create(ctx, vessel); err != nil {
		return nil, nil, err
	}
	s.logger.Info("Registered vessel", zap.String("vessel", vessel.Key()))

	syncResult, err := s.variants.SyncVessel(ctx, vessel)
	if err != nil {
		return vessel, nil, err
	}

	if err := s.setVesselMetadata(ctx, vessel, syncResult.ProductID); err != nil {
		syncResult.Warnings = append(syncResult.Warnings, "set metadata: "+err.Error())
	}

	s.activateInventory(ctx, syncResult)

	return vessel, syncResult, nil
}

// Deactivate soft-disables a vessel; its combinations stop participating
// in generation and sync. Vessels are never hard-deleted.
func (s *vesselService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repos.Vessel.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repos.Vessel.SetActive(ctx, id, false)
}

func (s *vesselService) setVesselMetadata(ctx context.Context, vessel *domain.Vessel, productID string) error {
	supplier := ""
	if vessel.Supplier != nil {
		supplier = *vessel.Supplier
	}
	metafields := []domain.Metafield{
		{Namespace: "custom", Key: "base_cost", Type: "number_decimal", Value: pricing.FormatCents(vessel.BaseCostCents)},
		{Namespace: "custom", Key: "margin_pct", Type: "number_decimal", Value: strconv.FormatFloat(vessel.MarginPct, 'f', -1, 64)},
		{Namespace: "custom", Key: "size_oz", Type: "number_decimal", Value: strconv.FormatFloat(vessel.SizeOz, 'f', -1, 64)},
		{Namespace: "custom", Key: "supplier", Type: "single_line_text_field", Value: supplier},
	}
	return s.catalog.SetMetafields(ctx, productID, metafields)
}

// activateInventory turns on tracking for every variant of a freshly
// synced product. Failures are appended to the sync result's warnings.
func (s *vesselService) activateInventory(ctx context.Context, syncResult *domain.SyncResult) {
	locationID, err := s.catalog.GetPrimaryLocationID(ctx)
	if err != nil {
		syncResult.Warnings = append(syncResult.Warnings, "inventory: "+err.Error())
		return
	}

	variants, err := s.catalog.ListVariants(ctx, syncResult.ProductID)
	if err != nil {
		syncResult.Warnings = append(syncResult.Warnings, "inventory: "+err.Error())
		return
	}

	for _, v := range variants {
		if v.InventoryItemID == "" {
			syncResult.Warnings = append(syncResult.Warnings, "inventory: variant "+v.ID+" has no inventory item")
			continue
		}
		if err := s.catalog.ActivateInventory(ctx, v.InventoryItemID, locationID, s.cfg.DefaultStockQuantity); err != nil {
			syncResult.Warnings = append(syncResult.Warnings, "inventory "+v.ID+": "+err.Error())
		}
	}
}

func validateRegistration(name string, req *RegisterVesselRequest) error {
	fields := map[string]string{}
	if name == "" {
		fields["name"] = "name is required"
	}
	if req.SizeOz <= 0 {
		fields["size_oz"] = "size must be a positive number of ounces"
	}
	if req.BaseCostDollars < 0 {
		fields["base_cost"] = "base cost must be non-negative"
	}
	if req.MarginPct < 0 {
		fields["margin_pct"] = "margin must be non-negative"
	}
	if len(fields) > 0 {
		return &errors.ErrValidation{Message: "invalid vessel registration", Fields: fields}
	}
	return nil
}
