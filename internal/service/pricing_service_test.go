package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/pkg/errors"
)

// setupPricingTest provisions both fixture vessels into the fake catalog
// so previews have real variants to diff against.
func setupPricingTest(t *testing.T) (*pricingService, *fakeCatalog, *repository.Repositories) {
	t.Helper()
	catalog := newFakeCatalog()
	repos := newFakeRepos(testVessels(), testWaxes(), testWicks())
	variants := NewVariantService(repos, catalog, testPricingConfig(), zap.NewNop())

	vessels, err := repos.Vessel.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list vessels: %v", err)
	}
	for _, v := range vessels {
		if _, err := variants.SyncVessel(context.Background(), v); err != nil {
			t.Fatalf("provision %s: %v", v.Key(), err)
		}
	}
	return NewPricingService(repos, catalog, testPricingConfig(), zap.NewNop()), catalog, repos
}

func soyIncreaseChangeSet() *domain.PricingChangeSet {
	return &domain.PricingChangeSet{
		WaxPriceCents: map[string]int64{"Soy": 20},
	}
}

func TestPreview_DiffsEveryVariant(t *testing.T) {
	svc, catalog, _ := setupPricingTest(t)
	writesBefore := catalog.writeCalls

	preview, err := svc.Preview(context.Background(), soyIncreaseChangeSet())
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if catalog.writeCalls != writesBefore {
		t.Fatalf("preview performed %d catalog writes, want 0", catalog.writeCalls-writesBefore)
	}
	if preview.Summary.TotalVariants != 12 {
		t.Fatalf("total variants = %d, want 12", preview.Summary.TotalVariants)
	}
	// Soy appears in 2 vessels x 3 wicks.
	if preview.Summary.VariantsWithChanges != 6 {
		t.Fatalf("variants with changes = %d, want 6", preview.Summary.VariantsWithChanges)
	}

	for _, c := range preview.Changes {
		switch c.Wax {
		case "Soy":
			if c.Change != domain.ChangeIncrease {
				t.Errorf("%s/%s/%s: change = %s, want INCREASE", c.Container, c.Wax, c.Wick, c.Change)
			}
			if c.Container == "Mason Jar 16oz" && c.Wick == "Cotton" && c.NewPrice != "13.97" {
				t.Errorf("Mason Jar Soy/Cotton new price = %q, want 13.97", c.NewPrice)
			}
		default:
			if c.Change != domain.ChangeNone {
				t.Errorf("%s/%s/%s: change = %s, want NONE", c.Container, c.Wax, c.Wick, c.Change)
			}
			if c.CurrentPrice != c.NewPrice {
				t.Errorf("untouched variant price moved: %q -> %q", c.CurrentPrice, c.NewPrice)
			}
		}
	}
}

func TestPreview_EmptyChangeSet(t *testing.T) {
	svc, _, _ := setupPricingTest(t)
	_, err := svc.Preview(context.Background(), &domain.PricingChangeSet{})
	if _, ok := err.(*errors.ErrValidation); !ok {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestPreview_UnknownIngredient(t *testing.T) {
	svc, _, _ := setupPricingTest(t)
	_, err := svc.Preview(context.Background(), &domain.PricingChangeSet{
		WaxPriceCents: map[string]int64{"Beeswax": 30},
	})
	verr, ok := err.(*errors.ErrValidation)
	if !ok {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if _, ok := verr.Fields["waxes.Beeswax"]; !ok {
		t.Fatalf("validation fields = %v, want waxes.Beeswax", verr.Fields)
	}
}

func TestClassifyChange(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		proposed int64
		want     domain.ChangeKind
	}{
		{"equal", 1000, 1000, domain.ChangeNone},
		{"ordinary increase", 1000, 1100, domain.ChangeIncrease},
		{"ordinary decrease", 1000, 900, domain.ChangeDecrease},
		{"exactly threshold up", 1000, 1500, domain.ChangeIncrease},
		{"just over threshold up", 1000, 1501, domain.ChangeLargeIncrease},
		{"exactly threshold down", 1000, 500, domain.ChangeDecrease},
		{"just over threshold down", 1000, 499, domain.ChangeLargeDecrease},
		{"from zero", 0, 1, domain.ChangeLargeIncrease},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyChange(tc.current, tc.proposed, 50); got != tc.want {
				t.Fatalf("classifyChange(%d, %d) = %s, want %s", tc.current, tc.proposed, got, tc.want)
			}
		})
	}
}

func TestApply_WrongConfirmationWritesNothing(t *testing.T) {
	svc, catalog, repos := setupPricingTest(t)
	if _, err := svc.Preview(context.Background(), soyIncreaseChangeSet()); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	writesBefore := catalog.writeCalls

	_, err := svc.Apply(context.Background(), "999.99")
	if _, ok := err.(*errors.ErrValidation); !ok {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if catalog.writeCalls != writesBefore {
		t.Fatalf("rejected apply performed %d catalog writes, want 0", catalog.writeCalls-writesBefore)
	}
	wax, err := repos.Wax.GetByName(context.Background(), "Soy")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if wax.PricePerOzCents != 18 {
		t.Fatalf("soy cost = %d after rejected apply, want 18", wax.PricePerOzCents)
	}

	// The pending preview survives a rejected confirmation; a correct
	// confirmation still goes through.
	if _, err := svc.Apply(context.Background(), "13.97"); err != nil {
		t.Fatalf("Apply after rejection: %v", err)
	}
}

func TestApply_CommitsPricesAndOverrides(t *testing.T) {
	svc, catalog, repos := setupPricingTest(t)
	if _, err := svc.Preview(context.Background(), soyIncreaseChangeSet()); err != nil {
		t.Fatalf("Preview: %v", err)
	}

	result, err := svc.Apply(context.Background(), "13.97")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.VariantsUpdated != 6 {
		t.Fatalf("variants updated = %d, want 6", result.VariantsUpdated)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("warnings = %v, want none", result.Warnings)
	}

	wax, err := repos.Wax.GetByName(context.Background(), "Soy")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if wax.PricePerOzCents != 20 {
		t.Fatalf("soy cost = %d after apply, want 20", wax.PricePerOzCents)
	}

	// Written through to the catalog.
	vessels, _ := repos.Vessel.ListActive(context.Background())
	for _, v := range vessels {
		for pair, price := range catalog.variantPrices(*v.ShopifyProductID) {
			if pair.Wax == "Soy" && v.Key() == "Mason Jar 16oz" && pair.Wick == "Cotton" && price != "13.97" {
				t.Fatalf("catalog price for Mason Jar Soy/Cotton = %q, want 13.97", price)
			}
		}
	}

	// Pending change was consumed.
	if _, err := svc.Apply(context.Background(), "13.97"); err == nil {
		t.Fatal("second apply succeeded, want validation error")
	}
}

func TestApply_PartialBatchFailureWarns(t *testing.T) {
	svc, catalog, _ := setupPricingTest(t)
	preview, err := svc.Preview(context.Background(), soyIncreaseChangeSet())
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	var failedID string
	for _, c := range preview.Changes {
		if c.Changed() {
			failedID = c.VariantID
			break
		}
	}
	catalog.failUpdates[failedID] = "variant locked"

	result, err := svc.Apply(context.Background(), "13.97")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.VariantsUpdated != 5 {
		t.Fatalf("variants updated = %d, want 5", result.VariantsUpdated)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", result.Warnings)
	}
}

func TestApply_NoPreview(t *testing.T) {
	svc, _, _ := setupPricingTest(t)
	if _, err := svc.Apply(context.Background(), "13.97"); err == nil {
		t.Fatal("apply without preview succeeded, want error")
	}
}

func TestCancel_DiscardsPending(t *testing.T) {
	svc, _, _ := setupPricingTest(t)
	if _, err := svc.Preview(context.Background(), soyIncreaseChangeSet()); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	svc.Cancel()
	if _, err := svc.Apply(context.Background(), "13.97"); err == nil {
		t.Fatal("apply after cancel succeeded, want error")
	}
}
