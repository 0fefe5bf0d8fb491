package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/pricing"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/pkg/errors"
)

// pendingChange holds a proposed change set together with the preview it
// produced, until the operator applies or cancels it.
type pendingChange struct {
	changeSet *domain.PricingChangeSet
	preview   *domain.PricingPreview
	vesselIDs map[string]uuid.UUID // vessel key -> id, for committing overrides
}

type pricingService struct {
	repos   *repository.Repositories
	catalog CatalogSync
	cfg     config.PricingConfig
	logger  *zap.Logger

	mu      sync.Mutex
	pending *pendingChange
}

// NewPricingService creates a new pricing delta engine
func NewPricingService(repos *repository.Repositories, catalog CatalogSync, cfg config.PricingConfig, logger *zap.Logger) *pricingService {
	return &pricingService{
		repos:   repos,
		catalog: catalog,
		cfg:     cfg,
		logger:  logger,
	}
}

// Preview recomputes the price of every live catalog variant under the
// proposed cost overrides and diffs against current prices. Read-only:
// it never writes to the catalog.
func (s *pricingService) Preview(ctx context.Context, changeSet *domain.PricingChangeSet) (*domain.PricingPreview, error) {
	if changeSet.IsEmpty() {
		return nil, &errors.ErrValidation{Message: "pricing change set is empty"}
	}

	// Fresh snapshot of the ingredient collections. Lookups use the full
	// collections (not just active) because live variants may still
	// reference disabled ingredients.
	vessels, err := s.repos.Vessel.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	waxes, err := s.repos.Wax.List(ctx)
	if err != nil {
		return nil, err
	}
	wicks, err := s.repos.Wick.List(ctx)
	if err != nil {
		return nil, err
	}

	waxByName := make(map[string]*domain.Wax, len(waxes))
	for _, w := range waxes {
		waxByName[w.Name] = w
	}
	wickByName := make(map[string]*domain.Wick, len(wicks))
	for _, w := range wicks {
		wickByName[w.Name] = w
	}
	vesselByKey := make(map[string]*domain.Vessel, len(vessels))
	vesselIDs := make(map[string]uuid.UUID, len(vessels))
	for _, v := range vessels {
		vesselByKey[v.Key()] = v
		vesselIDs[v.Key()] = v.ID
	}

	if err := validateOverrideKeys(changeSet, waxByName, wickByName, vesselByKey); err != nil {
		return nil, err
	}

	preview := &domain.PricingPreview{CreatedAt: time.Now()}
	increase := decimal.Zero
	decrease := decimal.Zero

	for _, vessel := range vessels {
		if vessel.ShopifyProductID == nil || *vessel.ShopifyProductID == "" {
			continue
		}
		productID := *vessel.ShopifyProductID

		variants, err := s.catalog.ListVariants(ctx, productID)
		if err != nil {
			return nil, err
		}

		effectiveVessel := *vessel
		if override, ok := changeSet.VesselBaseCostCents[vessel.Key()]; ok {
			effectiveVessel.BaseCostCents = override
		}

		for _, variant := range variants {
			pair, err := variantOptionPair(&variant)
			if err != nil {
				return nil, err
			}
			wax, ok := waxByName[pair.Wax]
			if !ok {
				return nil, &errors.ErrConfiguration{Resource: "wax", Name: pair.Wax}
			}
			wick, ok := wickByName[pair.Wick]
			if !ok {
				return nil, &errors.ErrConfiguration{Resource: "wick", Name: pair.Wick}
			}

			effectiveWax := *wax
			if override, ok := changeSet.WaxPriceCents[wax.Name]; ok {
				effectiveWax.PricePerOzCents = override
			}
			effectiveWick := *wick
			if override, ok := changeSet.WickCostCents[wick.Name]; ok {
				effectiveWick.CostCents = override
			}

			newCents, err := pricing.ComputePriceCents(&effectiveVessel, &effectiveWax, &effectiveWick)
			if err != nil {
				return nil, err
			}
			currentCents, err := pricing.ParsePrice(variant.Price)
			if err != nil {
				return nil, err
			}

			change := domain.VariantChange{
				VariantID:    variant.ID,
				ProductID:    productID,
				ProductTitle: vessel.Key() + " Custom Candle",
				VariantTitle: variant.Title,
				Container:    vessel.Key(),
				Wax:          pair.Wax,
				Wick:         pair.Wick,
				CurrentPrice: pricing.FormatCents(currentCents),
				NewPrice:     pricing.FormatCents(newCents),
				Change:       classifyChange(currentCents, newCents, s.cfg.LargeChangePct),
			}
			preview.Changes = append(preview.Changes, change)

			delta := newCents - currentCents
			if delta > 0 {
				increase = increase.Add(decimal.New(delta, -2))
			} else if delta < 0 {
				decrease = decrease.Add(decimal.New(-delta, -2))
			}
			if change.Changed() {
				preview.Summary.VariantsWithChanges++
			}
		}
	}

	preview.Summary.TotalVariants = len(preview.Changes)
	preview.Summary.TotalPriceIncreaseDollars = increase.StringFixed(2)
	preview.Summary.TotalPriceDecreaseDollars = decrease.StringFixed(2)

	s.mu.Lock()
	s.pending = &pendingChange{
		changeSet: changeSet,
		preview:   preview,
		vesselIDs: vesselIDs,
	}
	s.mu.Unlock()

	s.logger.Info("Pricing preview generated",
		zap.Int("total_variants", preview.Summary.TotalVariants),
		zap.Int("with_changes", preview.Summary.VariantsWithChanges),
	)
	return preview, nil
}

// Apply writes the previewed prices to the catalog and commits the cost
// overrides into the ingredient collections. The confirmation string must
// equal one of the new prices from the preview (a deliberate friction
// step); a mismatch fails validation with zero catalog writes. Partial
// batch failures are reported as warnings, not rolled back. The pending
// change set is consumed by the attempt; any retry needs a new preview.
func (s *pricingService) Apply(ctx context.Context, confirmation string) (*domain.ApplyResult, error) {
	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()

	if pending == nil || len(pending.preview.Changes) == 0 {
		return nil, &errors.ErrValidation{Message: "no pricing preview to apply; generate a preview first"}
	}

	changed := make([]domain.VariantChange, 0, len(pending.preview.Changes))
	confirmed := false
	for _, c := range pending.preview.Changes {
		if !c.Changed() {
			continue
		}
		changed = append(changed, c)
		if c.NewPrice == confirmation {
			confirmed = true
		}
	}
	if len(changed) == 0 {
		return nil, &errors.ErrValidation{Message: "preview contains no price changes to apply"}
	}
	if !confirmed {
		return nil, &errors.ErrValidation{
			Message: "confirmation does not match any proposed new price",
			Fields:  map[string]string{"confirmation": confirmation},
		}
	}

	// Consume the pending change before writing: after any failure the
	// operator must preview and confirm again, to avoid double-application.
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()

	result := &domain.ApplyResult{}

	byProduct := make(map[string][]domain.PriceUpdateInput)
	productOrder := make([]string, 0)
	for _, c := range changed {
		if _, seen := byProduct[c.ProductID]; !seen {
			productOrder = append(productOrder, c.ProductID)
		}
		byProduct[c.ProductID] = append(byProduct[c.ProductID], domain.PriceUpdateInput{
			VariantID: c.VariantID,
			Price:     c.NewPrice,
		})
	}

	for _, productID := range productOrder {
		batch, err := s.catalog.BulkUpdateVariantPrices(ctx, productID, byProduct[productID])
		if err != nil {
			return nil, err
		}
		result.VariantsUpdated += len(batch.Variants)
		for _, e := range batch.Errors {
			result.Warnings = append(result.Warnings, "price update: "+e.String())
		}
	}

	// Commit the overrides so subsequent syncs use the new baseline.
	for name, cents := range pending.changeSet.WaxPriceCents {
		if err := s.repos.Wax.UpdatePrice(ctx, name, cents); err != nil {
			result.Warnings = append(result.Warnings, "commit wax cost "+name+": "+err.Error())
		}
	}
	for name, cents := range pending.changeSet.WickCostCents {
		if err := s.repos.Wick.UpdateCost(ctx, name, cents); err != nil {
			result.Warnings = append(result.Warnings, "commit wick cost "+name+": "+err.Error())
		}
	}
	for key, cents := range pending.changeSet.VesselBaseCostCents {
		id, ok := pending.vesselIDs[key]
		if !ok {
			result.Warnings = append(result.Warnings, "commit vessel cost "+key+": vessel no longer present")
			continue
		}
		if err := s.repos.Vessel.UpdateBaseCost(ctx, id, cents); err != nil {
			result.Warnings = append(result.Warnings, "commit vessel cost "+key+": "+err.Error())
		}
	}

	s.logger.Info("Pricing change applied",
		zap.Int("variants_updated", result.VariantsUpdated),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

// Cancel discards the pending change set and preview.
func (s *pricingService) Cancel() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// classifyChange compares prices in cents and flags swings strictly
// greater than largeChangePct of the current price. An exact threshold
// move is an ordinary change.
func classifyChange(currentCents, newCents int64, largeChangePct float64) domain.ChangeKind {
	if newCents == currentCents {
		return domain.ChangeNone
	}
	delta := newCents - currentCents
	abs := delta
	if abs < 0 {
		abs = -abs
	}

	large := false
	if currentCents == 0 {
		large = true
	} else if float64(abs)*100.0 > largeChangePct*float64(currentCents) {
		large = true
	}

	switch {
	case delta > 0 && large:
		return domain.ChangeLargeIncrease
	case delta > 0:
		return domain.ChangeIncrease
	case large:
		return domain.ChangeLargeDecrease
	default:
		return domain.ChangeDecrease
	}
}

func validateOverrideKeys(cs *domain.PricingChangeSet, waxes map[string]*domain.Wax, wicks map[string]*domain.Wick, vessels map[string]*domain.Vessel) error {
	fields := map[string]string{}
	for name, cents := range cs.WaxPriceCents {
		if _, ok := waxes[name]; !ok {
			fields["waxes."+name] = "unknown wax"
		} else if cents < 0 {
			fields["waxes."+name] = "cost must be non-negative"
		}
	}
	for name, cents := range cs.WickCostCents {
		if _, ok := wicks[name]; !ok {
			fields["wicks."+name] = "unknown wick"
		} else if cents < 0 {
			fields["wicks."+name] = "cost must be non-negative"
		}
	}
	for key, cents := range cs.VesselBaseCostCents {
		if _, ok := vessels[key]; !ok {
			fields["vessels."+key] = "unknown vessel"
		} else if cents < 0 {
			fields["vessels."+key] = "cost must be non-negative"
		}
	}
	if len(fields) > 0 {
		return &errors.ErrValidation{Message: "invalid pricing change set", Fields: fields}
	}
	return nil
}
