package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Vessel represents a candle container definition. The composite key
// name+size ("Mason Jar 16oz") must be unique across the catalog.
type Vessel struct {
	ID               uuid.UUID
	Name             string // canonicalized to title case
	SizeOz           float64
	BaseCostCents    int64
	MarginPct        float64
	Supplier         *string
	ShopifyProductID *string // GID of the provisioned product, set after first sync
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Key returns the vessel identity key, e.g. "Mason Jar 16oz".
func (v *Vessel) Key() string {
	return VesselKey(v.Name, v.SizeOz)
}

// VesselKey builds the identity key from a canonical name and size.
func VesselKey(name string, sizeOz float64) string {
	return fmt.Sprintf("%s %soz", name, strconv.FormatFloat(sizeOz, 'f', -1, 64))
}

// Handle returns the storefront product handle for the vessel,
// e.g. "mason-jar-16oz".
func (v *Vessel) Handle() string {
	slug := strings.ToLower(strings.Join(strings.Fields(v.Name), "-"))
	return fmt.Sprintf("%s-%soz", slug, strconv.FormatFloat(v.SizeOz, 'f', -1, 64))
}

// Wax represents a wax type priced per ounce. Identity key = name.
type Wax struct {
	ID              uuid.UUID
	Name            string
	PricePerOzCents int64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Wick represents a wick type with a flat cost regardless of vessel size.
// Identity key = name.
type Wick struct {
	ID        uuid.UUID
	Name      string
	CostCents int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VariantCombination is a derived, non-persisted entity: one cell of the
// vessel x wax x wick matrix with its computed price. It is recomputed on
// demand; the ingredient collections and the live catalog are the source
// of truth.
type VariantCombination struct {
	Container string // vessel key, e.g. "Mason Jar 16oz"
	Wax       string
	Wick      string
	Price     string // dollars, exactly two decimals
	SKU       string
}

// OptionPair identifies a variant within a vessel product by its wax and
// wick option values. Reconciliation diffs are keyed by this pair, never
// by catalog-assigned IDs.
type OptionPair struct {
	Wax  string
	Wick string
}

// PricingChangeSet holds proposed cost overrides, keyed by ingredient
// identity. It stays separate from committed catalog values until an
// explicit apply. Sparse: only changed keys are present.
type PricingChangeSet struct {
	// WaxPriceCents maps wax name -> proposed price-per-oz in cents.
	WaxPriceCents map[string]int64
	// WickCostCents maps wick name -> proposed flat cost in cents.
	WickCostCents map[string]int64
	// VesselBaseCostCents maps vessel key -> proposed base cost in cents.
	VesselBaseCostCents map[string]int64
}

// IsEmpty reports whether the change set proposes no overrides.
func (cs *PricingChangeSet) IsEmpty() bool {
	if cs == nil {
		return true
	}
	return len(cs.WaxPriceCents) == 0 && len(cs.WickCostCents) == 0 && len(cs.VesselBaseCostCents) == 0
}

// VariantChange is one row of a pricing preview.
type VariantChange struct {
	VariantID    string
	ProductID    string
	ProductTitle string
	VariantTitle string
	Container    string
	Wax          string
	Wick         string
	CurrentPrice string
	NewPrice     string
	Change       ChangeKind
}

// Changed reports whether the recomputed price differs from the stored one.
func (c *VariantChange) Changed() bool {
	return c.Change != ChangeNone
}

// PreviewSummary aggregates a pricing preview.
type PreviewSummary struct {
	TotalVariants             int
	VariantsWithChanges       int
	TotalPriceIncreaseDollars string
	TotalPriceDecreaseDollars string
}

// PricingPreview is the read-only diff produced before an apply.
type PricingPreview struct {
	Changes   []VariantChange
	Summary   PreviewSummary
	CreatedAt time.Time
}

// SyncResult reports one vessel reconciliation run.
type SyncResult struct {
	VesselKey       string
	ProductID       string
	VariantsCreated int
	PricesUpdated   int
	Warnings        []string
}

// ApplyResult reports a pricing apply run.
type ApplyResult struct {
	VariantsUpdated int
	Warnings        []string
}
