package domain

// OptionName is a typed key for the product options the engine manages.
// The external catalog stores options by display name; matching is done
// through this type so drift in the catalog's option names fails loudly
// instead of being silently skipped.
type OptionName string

const (
	OptionWax  OptionName = "Wax"
	OptionWick OptionName = "Wick"
)

// IsValid checks if the option name is one the engine manages.
func (o OptionName) IsValid() bool {
	switch o {
	case OptionWax, OptionWick:
		return true
	default:
		return false
	}
}

// ExpectedOptionNames lists the options every vessel product must carry,
// in the order they are created on the product.
func ExpectedOptionNames() []OptionName {
	return []OptionName{OptionWax, OptionWick}
}

// ChangeKind classifies a per-variant price change in a pricing preview.
type ChangeKind string

const (
	ChangeNone     ChangeKind = "NONE"
	ChangeIncrease ChangeKind = "INCREASE"
	ChangeDecrease ChangeKind = "DECREASE"
	// ChangeLarge marks a swing beyond the configured threshold so the
	// UI can warn before apply. Distinct from an ordinary increase/decrease.
	ChangeLargeIncrease ChangeKind = "LARGE_INCREASE"
	ChangeLargeDecrease ChangeKind = "LARGE_DECREASE"
)

// IsLarge reports whether the change exceeds the large-change threshold.
func (k ChangeKind) IsLarge() bool {
	return k == ChangeLargeIncrease || k == ChangeLargeDecrease
}

// IngredientKind names the three ingredient axes.
type IngredientKind string

const (
	IngredientVessel IngredientKind = "vessel"
	IngredientWax    IngredientKind = "wax"
	IngredientWick   IngredientKind = "wick"
)
