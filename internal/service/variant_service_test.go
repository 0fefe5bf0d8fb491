package service

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
)

func testPricingConfig() config.PricingConfig {
	return config.PricingConfig{LargeChangePct: 50, DefaultStockQuantity: 25, SKUTokenLength: 3}
}

func testVessels() []*domain.Vessel {
	return []*domain.Vessel{
		{Name: "Mason Jar", SizeOz: 16, BaseCostCents: 799, MarginPct: 20, IsActive: true},
		{Name: "Metal Tin", SizeOz: 8, BaseCostCents: 399, MarginPct: 20, IsActive: true},
	}
}

func testWaxes() []*domain.Wax {
	return []*domain.Wax{
		{Name: "Soy", PricePerOzCents: 18, IsActive: true},
		{Name: "Paraffin-Soy", PricePerOzCents: 15, IsActive: true},
	}
}

func testWicks() []*domain.Wick {
	return []*domain.Wick{
		{Name: "Cotton", CostCents: 45, IsActive: true},
		{Name: "Hemp", CostCents: 55, IsActive: true},
		{Name: "Wood", CostCents: 65, IsActive: true},
	}
}

func TestGenerateCombinations_FullMatrix(t *testing.T) {
	combos, err := GenerateCombinations(testVessels(), testWaxes(), testWicks(), 3)
	if err != nil {
		t.Fatalf("GenerateCombinations: %v", err)
	}
	if len(combos) != 12 {
		t.Fatalf("combinations = %d, want 12 (2 vessels x 2 waxes x 3 wicks)", len(combos))
	}

	prices := map[string]string{}
	for _, c := range combos {
		prices[c.Container+"|"+c.Wax+"|"+c.Wick] = c.Price
	}
	if got := prices["Mason Jar 16oz|Soy|Cotton"]; got != "13.58" {
		t.Errorf("Mason Jar + Soy + Cotton = %q, want 13.58", got)
	}
	if got := prices["Metal Tin 8oz|Paraffin-Soy|Wood"]; got != "7.01" {
		t.Errorf("Metal Tin + Paraffin-Soy + Wood = %q, want 7.01", got)
	}
}

func TestGenerateCombinations_Ordering(t *testing.T) {
	combos, err := GenerateCombinations(testVessels(), testWaxes(), testWicks(), 3)
	if err != nil {
		t.Fatalf("GenerateCombinations: %v", err)
	}

	// Vessel outer, wax middle, wick inner, each in input order.
	want := []domain.OptionPair{
		{Wax: "Soy", Wick: "Cotton"},
		{Wax: "Soy", Wick: "Hemp"},
		{Wax: "Soy", Wick: "Wood"},
		{Wax: "Paraffin-Soy", Wick: "Cotton"},
		{Wax: "Paraffin-Soy", Wick: "Hemp"},
		{Wax: "Paraffin-Soy", Wick: "Wood"},
	}
	for i, w := range want {
		if combos[i].Container != "Mason Jar 16oz" || combos[i].Wax != w.Wax || combos[i].Wick != w.Wick {
			t.Fatalf("combos[%d] = %s/%s/%s, want Mason Jar 16oz/%s/%s",
				i, combos[i].Container, combos[i].Wax, combos[i].Wick, w.Wax, w.Wick)
		}
	}
	if combos[6].Container != "Metal Tin 8oz" {
		t.Fatalf("combos[6].Container = %q, want Metal Tin 8oz", combos[6].Container)
	}
}

func TestGenerateCombinations_DisabledIngredientsExcluded(t *testing.T) {
	waxes := testWaxes()
	waxes[1].IsActive = false
	wicks := testWicks()
	wicks[2].IsActive = false
	vessels := testVessels()
	vessels[1].IsActive = false

	combos, err := GenerateCombinations(vessels, waxes, wicks, 3)
	if err != nil {
		t.Fatalf("GenerateCombinations: %v", err)
	}
	if len(combos) != 2 {
		t.Fatalf("combinations = %d, want 2 (1 vessel x 1 wax x 2 wicks)", len(combos))
	}
	for _, c := range combos {
		if c.Wax == "Paraffin-Soy" || c.Wick == "Wood" || c.Container == "Metal Tin 8oz" {
			t.Errorf("disabled ingredient leaked into output: %+v", c)
		}
	}
}

func TestDeriveSKU(t *testing.T) {
	sku := DeriveSKU(3, "Mason Jar", "Soy", "Cotton")
	if sku != "MAS-SOY-COT" {
		t.Fatalf("sku = %q, want MAS-SOY-COT", sku)
	}
	if again := DeriveSKU(3, "Mason Jar", "Soy", "Cotton"); again != sku {
		t.Fatalf("sku not deterministic: %q vs %q", sku, again)
	}
	// Short names are used whole.
	if got := DeriveSKU(3, "Io", "Soy", "Cotton"); got != "IO-SOY-COT" {
		t.Fatalf("short-name sku = %q, want IO-SOY-COT", got)
	}
}

func TestNewCatalogSKU_HasDeterministicPrefix(t *testing.T) {
	sku := NewCatalogSKU(3, "Mason Jar", "Soy", "Cotton")
	if !strings.HasPrefix(sku, "MAS-SOY-COT-") {
		t.Fatalf("sku = %q, want prefix MAS-SOY-COT-", sku)
	}
}

func setupSyncTest(t *testing.T) (*variantService, *fakeCatalog, *domain.Vessel) {
	t.Helper()
	catalog := newFakeCatalog()
	repos := newFakeRepos(testVessels(), testWaxes(), testWicks())
	svc := NewVariantService(repos, catalog, testPricingConfig(), zap.NewNop())
	vessels, _ := repos.Vessel.ListActive(context.Background())
	return svc, catalog, vessels[0] // Mason Jar 16oz
}

func TestSyncVessel_ProvisionsFullMatrix(t *testing.T) {
	svc, catalog, vessel := setupSyncTest(t)

	result, err := svc.SyncVessel(context.Background(), vessel)
	if err != nil {
		t.Fatalf("SyncVessel: %v", err)
	}
	if result.VariantsCreated != 6 {
		t.Fatalf("created = %d, want 6 (2 waxes x 3 wicks)", result.VariantsCreated)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("warnings = %v, want none", result.Warnings)
	}
	if vessel.ShopifyProductID == nil || *vessel.ShopifyProductID != result.ProductID {
		t.Fatal("vessel record was not linked to the catalog product")
	}

	prices := catalog.variantPrices(result.ProductID)
	if got := prices[domain.OptionPair{Wax: "Soy", Wick: "Cotton"}]; got != "13.58" {
		t.Fatalf("Soy/Cotton price = %q, want 13.58", got)
	}
}

func TestSyncVessel_Idempotent(t *testing.T) {
	svc, catalog, vessel := setupSyncTest(t)

	first, err := svc.SyncVessel(context.Background(), vessel)
	if err != nil {
		t.Fatalf("first sync: %v", err)
	}
	pricesAfterFirst := catalog.variantPrices(first.ProductID)

	second, err := svc.SyncVessel(context.Background(), vessel)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if second.VariantsCreated != 0 {
		t.Fatalf("second run created %d variants, want 0", second.VariantsCreated)
	}
	pricesAfterSecond := catalog.variantPrices(second.ProductID)
	if len(pricesAfterSecond) != 6 {
		t.Fatalf("variant count after second sync = %d, want 6", len(pricesAfterSecond))
	}
	for pair, price := range pricesAfterFirst {
		if pricesAfterSecond[pair] != price {
			t.Errorf("price changed on idempotent re-run for %v: %q -> %q", pair, price, pricesAfterSecond[pair])
		}
	}
}

func TestSyncVessel_SelfHealsPriceDrift(t *testing.T) {
	svc, catalog, vessel := setupSyncTest(t)

	result, err := svc.SyncVessel(context.Background(), vessel)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	// Simulate out-of-band drift in the stored price.
	catalog.products[result.ProductID].variants[0].Price = "99.99"

	if _, err := svc.SyncVessel(context.Background(), vessel); err != nil {
		t.Fatalf("resync: %v", err)
	}
	for pair, price := range catalog.variantPrices(result.ProductID) {
		if price == "99.99" {
			t.Fatalf("drifted price for %v was not healed", pair)
		}
	}
}

func TestSyncVessel_PartialCreateFailureContinues(t *testing.T) {
	svc, catalog, vessel := setupSyncTest(t)
	catalog.failCreate[domain.OptionPair{Wax: "Soy", Wick: "Hemp"}] = "variant rejected"

	result, err := svc.SyncVessel(context.Background(), vessel)
	if err != nil {
		t.Fatalf("SyncVessel: %v", err)
	}
	if result.VariantsCreated != 5 {
		t.Fatalf("created = %d, want 5 (one per-item failure)", result.VariantsCreated)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", result.Warnings)
	}
	if result.PricesUpdated != 5 {
		t.Fatalf("prices updated = %d, want 5", result.PricesUpdated)
	}
}

func TestSyncVessel_NoActiveIngredients(t *testing.T) {
	catalog := newFakeCatalog()
	repos := newFakeRepos(testVessels(), nil, testWicks())
	svc := NewVariantService(repos, catalog, testPricingConfig(), zap.NewNop())
	vessels, _ := repos.Vessel.ListActive(context.Background())

	if _, err := svc.SyncVessel(context.Background(), vessels[0]); err == nil {
		t.Fatal("expected error when no waxes are configured")
	}
	if catalog.writeCalls != 0 {
		t.Fatalf("catalog writes = %d, want 0", catalog.writeCalls)
	}
}
