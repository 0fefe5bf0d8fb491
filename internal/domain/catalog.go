package domain

// Types crossing the catalog sync boundary. All prices are decimal
// strings with exactly two fraction digits, never floating-point cents.

// CatalogProduct is a product as known to the external catalog.
type CatalogProduct struct {
	ID     string
	Title  string
	Handle string
}

// SelectedOption is one name/value pair on a catalog variant.
type SelectedOption struct {
	Name  string
	Value string
}

// CatalogVariant is a variant as known to the external catalog.
type CatalogVariant struct {
	ID              string
	Title           string
	SKU             string
	Price           string
	InventoryItemID string
	SelectedOptions []SelectedOption
}

// OptionValue returns the value for the given managed option, and whether
// the variant carries that option at all.
func (v *CatalogVariant) OptionValue(name OptionName) (string, bool) {
	for _, opt := range v.SelectedOptions {
		if opt.Name == string(name) {
			return opt.Value, true
		}
	}
	return "", false
}

// ProductOption is an option axis on a catalog product.
type ProductOption struct {
	Name   string
	Values []string
}

// Metafield is a metadata entry set on a catalog resource.
type Metafield struct {
	Namespace string
	Key       string
	Type      string
	Value     string
}

// NewVariantInput describes one variant to create in a batch.
type NewVariantInput struct {
	OptionValues []SelectedOption
	Price        string
	SKU          string
}

// PriceUpdateInput describes one variant price write in a batch.
type PriceUpdateInput struct {
	VariantID string
	Price     string
}

// BatchItemError is a per-item failure inside an otherwise successful
// batched catalog call.
type BatchItemError struct {
	Field   string
	Message string
}

func (e BatchItemError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// BatchResult reports a batched catalog mutation: what succeeded and the
// per-item errors. Item errors never abort sibling items.
type BatchResult struct {
	Variants []CatalogVariant
	Errors   []BatchItemError
}
