// Package pricing implements the canonical custom-candle pricing formula.
// It is pure computation: no catalog access, no side effects.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// ComputePriceCents computes the retail price in cents for one
// vessel x wax x wick combination:
//
//	raw = vessel.baseCost + wick.cost + wax.pricePerOz * vessel.sizeOz
//	price = round(raw * (1 + vessel.marginPct/100))
//
// Rounding happens exactly once, after margin is applied, half-up on the
// cents value. Inputs are validated; negative or non-finite values are
// rejected before computation.
func ComputePriceCents(vessel *domain.Vessel, wax *domain.Wax, wick *domain.Wick) (int64, error) {
	if err := validateInputs(vessel, wax, wick); err != nil {
		return 0, err
	}

	raw := decimal.NewFromInt(vessel.BaseCostCents).
		Add(decimal.NewFromInt(wick.CostCents)).
		Add(decimal.NewFromInt(wax.PricePerOzCents).Mul(decimal.NewFromFloat(vessel.SizeOz)))

	marginFactor := decimal.NewFromFloat(vessel.MarginPct).Div(oneHundred).Add(decimal.NewFromInt(1))

	// decimal.Round is round-half-away-from-zero, which is half-up for
	// the non-negative values validated above.
	return raw.Mul(marginFactor).Round(0).IntPart(), nil
}

// ComputePrice is ComputePriceCents formatted as a two-decimal dollar string.
func ComputePrice(vessel *domain.Vessel, wax *domain.Wax, wick *domain.Wick) (string, error) {
	cents, err := ComputePriceCents(vessel, wax, wick)
	if err != nil {
		return "", err
	}
	return FormatCents(cents), nil
}

// FormatCents renders cents as a dollar string with exactly two fraction
// digits, the only price representation that crosses the catalog boundary.
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// ParsePrice converts a catalog price string (e.g. "24.50") to cents.
func ParsePrice(price string) (int64, error) {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", price, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

func validateInputs(vessel *domain.Vessel, wax *domain.Wax, wick *domain.Wick) error {
	if vessel == nil {
		return fmt.Errorf("vessel is required")
	}
	if wax == nil {
		return fmt.Errorf("wax is required")
	}
	if wick == nil {
		return fmt.Errorf("wick is required")
	}
	if vessel.BaseCostCents < 0 {
		return fmt.Errorf("vessel %q: base cost must be non-negative", vessel.Name)
	}
	if math.IsNaN(vessel.SizeOz) || math.IsInf(vessel.SizeOz, 0) || vessel.SizeOz <= 0 {
		return fmt.Errorf("vessel %q: size must be a finite positive number", vessel.Name)
	}
	if math.IsNaN(vessel.MarginPct) || math.IsInf(vessel.MarginPct, 0) || vessel.MarginPct < 0 {
		return fmt.Errorf("vessel %q: margin must be a finite non-negative percentage", vessel.Name)
	}
	if wax.PricePerOzCents < 0 {
		return fmt.Errorf("wax %q: price per oz must be non-negative", wax.Name)
	}
	if wick.CostCents < 0 {
		return fmt.Errorf("wick %q: cost must be non-negative", wick.Name)
	}
	return nil
}
