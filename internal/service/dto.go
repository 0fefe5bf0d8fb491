package service

// RegisterVesselRequest is the vessel registration payload. Name may
// arrive in any casing/spacing; it is normalized before the identity key
// is derived.
type RegisterVesselRequest struct {
	Name            string  `json:"name" binding:"required"`
	SizeOz          int     `json:"size_oz" binding:"required,gt=0"`
	BaseCostDollars float64 `json:"base_cost" binding:"min=0"`
	MarginPct       float64 `json:"margin_pct" binding:"min=0"`
	Supplier        *string `json:"supplier,omitempty"`
}

// PricingChangeRequest is the sparse pricing change set payload. All
// values are integer cents; keys are ingredient identity keys (wax/wick
// name, vessel "Name SizeOz" key).
type PricingChangeRequest struct {
	Waxes   map[string]int64 `json:"waxes,omitempty"`
	Wicks   map[string]int64 `json:"wicks,omitempty"`
	Vessels map[string]int64 `json:"vessels,omitempty"`
}

// ApplyPricingRequest carries the confirmation string for an apply: it
// must equal one of the new prices shown in the preview.
type ApplyPricingRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

// CreateWaxRequest adds a wax type to the ingredient catalog.
type CreateWaxRequest struct {
	Name            string `json:"name" binding:"required"`
	PricePerOzCents int64  `json:"price_per_oz_cents" binding:"min=0"`
}

// CreateWickRequest adds a wick type to the ingredient catalog.
type CreateWickRequest struct {
	Name      string `json:"name" binding:"required"`
	CostCents int64  `json:"cost_cents" binding:"min=0"`
}

// UpdateCostRequest changes a single ingredient's committed cost outside
// the preview/apply flow (seeding and corrections).
type UpdateCostRequest struct {
	Cents int64 `json:"cents" binding:"min=0"`
}
