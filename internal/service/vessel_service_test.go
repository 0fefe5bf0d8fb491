package service

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/pkg/errors"
)

func setupVesselTest(t *testing.T) (*vesselService, *fakeCatalog) {
	t.Helper()
	catalog := newFakeCatalog()
	repos := newFakeRepos(testVessels(), testWaxes(), testWicks())
	variants := NewVariantService(repos, catalog, testPricingConfig(), zap.NewNop())
	return NewVesselService(repos, catalog, variants, testPricingConfig(), zap.NewNop()), catalog
}

func TestNormalizeVesselName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"mason jar", "Mason Jar"},
		{"  mason   JAR  ", "Mason Jar"},
		{"AMBER glass", "Amber Glass"},
		{"tin", "Tin"},
	}
	for _, tc := range cases {
		if got := NormalizeVesselName(tc.in); got != tc.want {
			t.Errorf("NormalizeVesselName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCheckAvailable(t *testing.T) {
	svc, _ := setupVesselTest(t)

	// Same identity as the existing Mason Jar 16oz, different casing.
	available, key, err := svc.CheckAvailable(context.Background(), "  mason   jar ", 16)
	if err != nil {
		t.Fatalf("CheckAvailable: %v", err)
	}
	if available {
		t.Fatal("mason jar 16oz reported available, want taken")
	}
	if key != "Mason Jar 16oz" {
		t.Fatalf("key = %q, want Mason Jar 16oz", key)
	}

	// Same name, different size, is a distinct identity.
	available, _, err = svc.CheckAvailable(context.Background(), "Mason Jar", 12)
	if err != nil {
		t.Fatalf("CheckAvailable: %v", err)
	}
	if !available {
		t.Fatal("mason jar 12oz reported taken, want available")
	}
}

func TestRegister_DuplicateRejectedBeforeCatalogCalls(t *testing.T) {
	svc, catalog := setupVesselTest(t)

	_, _, err := svc.Register(context.Background(), &RegisterVesselRequest{
		Name:            "mason jar",
		SizeOz:          16,
		BaseCostDollars: 7.99,
		MarginPct:       20,
	})
	if _, ok := err.(*errors.ErrConflict); !ok {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if len(catalog.calls) != 0 {
		t.Fatalf("catalog calls on duplicate = %v, want none", catalog.calls)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, catalog := setupVesselTest(t)

	_, _, err := svc.Register(context.Background(), &RegisterVesselRequest{
		Name:            "  ",
		SizeOz:          0,
		BaseCostDollars: -1,
	})
	verr, ok := err.(*errors.ErrValidation)
	if !ok {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	for _, field := range []string{"name", "size_oz", "base_cost"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("validation fields missing %q: %v", field, verr.Fields)
		}
	}
	if len(catalog.calls) != 0 {
		t.Fatalf("catalog calls on invalid input = %v, want none", catalog.calls)
	}
}

func TestRegister_FullProvisioning(t *testing.T) {
	svc, catalog := setupVesselTest(t)
	supplier := "CandleScience"

	vessel, syncResult, err := svc.Register(context.Background(), &RegisterVesselRequest{
		Name:            "amber glass",
		SizeOz:          12,
		BaseCostDollars: 5.49,
		MarginPct:       25,
		Supplier:        &supplier,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if vessel.Name != "Amber Glass" {
		t.Fatalf("vessel name = %q, want Amber Glass", vessel.Name)
	}
	if vessel.BaseCostCents != 549 {
		t.Fatalf("base cost = %d cents, want 549", vessel.BaseCostCents)
	}
	if syncResult.VariantsCreated != 6 {
		t.Fatalf("variants created = %d, want 6", syncResult.VariantsCreated)
	}
	if len(syncResult.Warnings) != 0 {
		t.Fatalf("warnings = %v, want none", syncResult.Warnings)
	}

	var sawMetafields bool
	var activations int
	for _, call := range catalog.calls {
		switch call {
		case "SetMetafields":
			sawMetafields = true
		case "ActivateInventory":
			activations++
		}
	}
	if !sawMetafields {
		t.Error("registration never set vessel metafields")
	}
	if activations != 6 {
		t.Errorf("inventory activations = %d, want 6 (one per variant)", activations)
	}
}

func TestRegister_InventoryFailureIsWarningNotError(t *testing.T) {
	svc, catalog := setupVesselTest(t)

	// Variant IDs are assigned sequentially; fail stock activation for the
	// first inventory item the new product will receive.
	catalog.failStock["gid://fake/InventoryItem/2"] = "location not stocked"

	_, syncResult, err := svc.Register(context.Background(), &RegisterVesselRequest{
		Name:            "travel tin",
		SizeOz:          4,
		BaseCostDollars: 2.25,
		MarginPct:       30,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(syncResult.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", syncResult.Warnings)
	}
	if !strings.Contains(syncResult.Warnings[0], "location not stocked") {
		t.Fatalf("warning = %q, want the activation failure message", syncResult.Warnings[0])
	}
	if syncResult.VariantsCreated != 6 {
		t.Fatalf("variants created = %d, want 6", syncResult.VariantsCreated)
	}
}
