package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/pricing"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/pkg/errors"
)

type variantService struct {
	repos   *repository.Repositories
	catalog CatalogSync
	cfg     config.PricingConfig
	logger  *zap.Logger
}

// NewVariantService creates a new variant generator service
func NewVariantService(repos *repository.Repositories, catalog CatalogSync, cfg config.PricingConfig, logger *zap.Logger) *variantService {
	return &variantService{
		repos:   repos,
		catalog: catalog,
		cfg:     cfg,
		logger:  logger,
	}
}

// DeriveSKU builds the deterministic display SKU for a combination:
// the first tokenLen characters of each ingredient name (whitespace
// stripped), uppercased and hyphen-joined. Identical inputs always yield
// identical SKUs; this form is used for display and diffing.
func DeriveSKU(tokenLen int, names ...string) string {
	tokens := make([]string, 0, len(names))
	for _, name := range names {
		compact := strings.Join(strings.Fields(name), "")
		runes := []rune(strings.ToUpper(compact))
		if len(runes) > tokenLen {
			runes = runes[:tokenLen]
		}
		tokens = append(tokens, string(runes))
	}
	return strings.Join(tokens, "-")
}

// NewCatalogSKU appends a random suffix to the deterministic SKU. Only
// used when creating genuinely new catalog variants, to avoid collisions;
// never used in comparisons.
func NewCatalogSKU(tokenLen int, vesselName, waxName, wickName string) string {
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return DeriveSKU(tokenLen, vesselName, waxName, wickName) + "-" + suffix
}

// GenerateCombinations enumerates every enabled vessel x wax x wick
// combination with its computed price. Ordering is deterministic (vessel
// outer, wax middle, wick inner, each in input order) because the UI and
// CSV export diff against it.
func GenerateCombinations(vessels []*domain.Vessel, waxes []*domain.Wax, wicks []*domain.Wick, skuTokenLen int) ([]domain.VariantCombination, error) {
	var combos []domain.VariantCombination
	for _, vessel := range vessels {
		if !vessel.IsActive {
			continue
		}
		for _, wax := range waxes {
			if !wax.IsActive {
				continue
			}
			for _, wick := range wicks {
				if !wick.IsActive {
					continue
				}
				price, err := pricing.ComputePrice(vessel, wax, wick)
				if err != nil {
					return nil, fmt.Errorf("combination %s / %s / %s: %w", vessel.Key(), wax.Name, wick.Name, err)
				}
				combos = append(combos, domain.VariantCombination{
					Container: vessel.Key(),
					Wax:       wax.Name,
					Wick:      wick.Name,
					Price:     price,
					SKU:       DeriveSKU(skuTokenLen, vessel.Name, wax.Name, wick.Name),
				})
			}
		}
	}
	return combos, nil
}

// GenerateMatrix loads the ingredient catalog and returns the full priced
// combination matrix.
func (s *variantService) GenerateMatrix(ctx context.Context) ([]domain.VariantCombination, error) {
	vessels, err := s.repos.Vessel.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	waxes, err := s.repos.Wax.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	wicks, err := s.repos.Wick.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return GenerateCombinations(vessels, waxes, wicks, s.cfg.SKUTokenLength)
}

// SyncVessel reconciles one vessel's variant matrix against the external
// catalog:
//
//  1. ensure the vessel product and its Wax/Wick options exist
//  2. diff existing variants against the expected wax x wick set, keyed
//     by option pair (never by catalog IDs)
//  3. create only the missing combinations in one batch
//  4. re-fetch the full variant list (creation responses are not trusted
//     for IDs used in later steps)
//  5. recompute and batch-update the price of every variant present, so
//     stored-price drift self-heals on every sync
//
// Re-running against an unchanged configuration creates nothing and
// leaves prices identical.
func (s *variantService) SyncVessel(ctx context.Context, vessel *domain.Vessel) (*domain.SyncResult, error) {
	waxes, err := s.repos.Wax.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	wicks, err := s.repos.Wick.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(waxes) == 0 || len(wicks) == 0 {
		return nil, &errors.ErrValidation{Message: "cannot sync vessel: no active waxes or wicks configured"}
	}

	result := &domain.SyncResult{VesselKey: vessel.Key()}

	productID, err := s.ensureProduct(ctx, vessel, waxes, wicks)
	if err != nil {
		return nil, err
	}
	result.ProductID = productID

	// Fetch existing variants and project to their option pairs.
	existing, err := s.catalog.ListVariants(ctx, productID)
	if err != nil {
		return nil, err
	}
	existingPairs := make(map[domain.OptionPair]bool, len(existing))
	for _, v := range existing {
		pair, err := variantOptionPair(&v)
		if err != nil {
			return nil, err
		}
		existingPairs[pair] = true
	}

	// Expected set is the full Cartesian product of configured wax x wick;
	// create only what is missing.
	var missing []domain.NewVariantInput
	for _, wax := range waxes {
		for _, wick := range wicks {
			pair := domain.OptionPair{Wax: wax.Name, Wick: wick.Name}
			if existingPairs[pair] {
				continue
			}
			price, err := pricing.ComputePrice(vessel, wax, wick)
			if err != nil {
				return nil, err
			}
			missing = append(missing, domain.NewVariantInput{
				OptionValues: []domain.SelectedOption{
					{Name: string(domain.OptionWax), Value: wax.Name},
					{Name: string(domain.OptionWick), Value: wick.Name},
				},
				Price: price,
				SKU:   NewCatalogSKU(s.cfg.SKUTokenLength, vessel.Name, wax.Name, wick.Name),
			})
		}
	}

	if len(missing) > 0 {
		batch, err := s.catalog.BulkCreateVariants(ctx, productID, missing)
		if err != nil {
			return nil, err
		}
		result.VariantsCreated = len(batch.Variants)
		for _, e := range batch.Errors {
			result.Warnings = append(result.Warnings, "variant create: "+e.String())
		}
	}

	// Confirming read: never trust the creation response for the IDs used
	// in subsequent steps.
	variants, err := s.catalog.ListVariants(ctx, productID)
	if err != nil {
		return nil, err
	}

	// Recompute every variant's price, including ones that already
	// existed, so drift between stored price and formula output heals.
	waxByName := make(map[string]*domain.Wax, len(waxes))
	for _, w := range waxes {
		waxByName[w.Name] = w
	}
	wickByName := make(map[string]*domain.Wick, len(wicks))
	for _, w := range wicks {
		wickByName[w.Name] = w
	}

	var updates []domain.PriceUpdateInput
	for _, v := range variants {
		pair, err := variantOptionPair(&v)
		if err != nil {
			return nil, err
		}
		wax, ok := waxByName[pair.Wax]
		if !ok {
			// A catalog variant references an ingredient we no longer
			// configure. Fall back to the full collection before calling
			// it a configuration error.
			wax, err = s.repos.Wax.GetByName(ctx, pair.Wax)
			if err != nil {
				return nil, &errors.ErrConfiguration{Resource: "wax", Name: pair.Wax}
			}
		}
		wick, ok := wickByName[pair.Wick]
		if !ok {
			wick, err = s.repos.Wick.GetByName(ctx, pair.Wick)
			if err != nil {
				return nil, &errors.ErrConfiguration{Resource: "wick", Name: pair.Wick}
			}
		}
		price, err := pricing.ComputePrice(vessel, wax, wick)
		if err != nil {
			return nil, err
		}
		updates = append(updates, domain.PriceUpdateInput{VariantID: v.ID, Price: price})
	}

	if len(updates) > 0 {
		batch, err := s.catalog.BulkUpdateVariantPrices(ctx, productID, updates)
		if err != nil {
			return nil, err
		}
		result.PricesUpdated = len(batch.Variants)
		for _, e := range batch.Errors {
			result.Warnings = append(result.Warnings, "price update: "+e.String())
		}
	}

	s.logger.Info("Vessel sync complete",
		zap.String("vessel", vessel.Key()),
		zap.String("product_id", productID),
		zap.Int("created", result.VariantsCreated),
		zap.Int("prices_updated", result.PricesUpdated),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

// ensureProduct finds or creates the vessel's catalog product and makes
// sure its option axes match the managed set.
func (s *variantService) ensureProduct(ctx context.Context, vessel *domain.Vessel, waxes []*domain.Wax, wicks []*domain.Wick) (string, error) {
	if vessel.ShopifyProductID != nil && *vessel.ShopifyProductID != "" {
		return s.validateOptions(ctx, vessel, *vessel.ShopifyProductID)
	}

	product, err := s.catalog.FindProductByHandle(ctx, vessel.Handle())
	if err != nil {
		return "", err
	}
	if product != nil {
		if err := s.repos.Vessel.UpdateShopifyProductID(ctx, vessel.ID, product.ID); err != nil {
			return "", err
		}
		vessel.ShopifyProductID = &product.ID
		return s.validateOptions(ctx, vessel, product.ID)
	}

	productID, err := s.catalog.CreateProduct(ctx, vessel.Key()+" Custom Candle", vessel.Handle())
	if err != nil {
		return "", err
	}

	waxValues := make([]string, 0, len(waxes))
	for _, w := range waxes {
		waxValues = append(waxValues, w.Name)
	}
	wickValues := make([]string, 0, len(wicks))
	for _, w := range wicks {
		wickValues = append(wickValues, w.Name)
	}
	options := []domain.ProductOption{
		{Name: string(domain.OptionWax), Values: waxValues},
		{Name: string(domain.OptionWick), Values: wickValues},
	}
	if err := s.catalog.CreateProductOptions(ctx, productID, options, false); err != nil {
		return "", err
	}

	if err := s.repos.Vessel.UpdateShopifyProductID(ctx, vessel.ID, productID); err != nil {
		return "", err
	}
	vessel.ShopifyProductID = &productID
	return productID, nil
}

// validateOptions fails loudly if the catalog's option names have drifted
// from the managed Wax/Wick set.
func (s *variantService) validateOptions(ctx context.Context, vessel *domain.Vessel, productID string) (string, error) {
	options, err := s.catalog.GetProductOptions(ctx, productID)
	if err != nil {
		return "", err
	}
	present := make(map[domain.OptionName]bool, len(options))
	for _, o := range options {
		present[domain.OptionName(o.Name)] = true
	}
	for _, expected := range domain.ExpectedOptionNames() {
		if !present[expected] {
			return "", fmt.Errorf("vessel %s: catalog product %s is missing expected option %q", vessel.Key(), productID, expected)
		}
	}
	return productID, nil
}

// variantOptionPair projects a catalog variant to its (wax, wick) key.
// A variant without both managed options is a hard error, not a skip.
func variantOptionPair(v *domain.CatalogVariant) (domain.OptionPair, error) {
	waxValue, ok := v.OptionValue(domain.OptionWax)
	if !ok {
		return domain.OptionPair{}, fmt.Errorf("variant %s has no %q option", v.ID, domain.OptionWax)
	}
	wickValue, ok := v.OptionValue(domain.OptionWick)
	if !ok {
		return domain.OptionPair{}, fmt.Errorf("variant %s has no %q option", v.ID, domain.OptionWick)
	}
	return domain.OptionPair{Wax: waxValue, Wick: wickValue}, nil
}
