package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/pkg/errors"
)

// In-memory stand-ins for the catalog boundary and the ingredient
// repositories. The catalog fake records every call so tests can assert
// that validation failures perform zero catalog writes.

type fakeProduct struct {
	id       string
	title    string
	handle   string
	options  []domain.ProductOption
	variants []domain.CatalogVariant
}

type fakeCatalog struct {
	products   map[string]*fakeProduct
	byHandle   map[string]string
	locationID string
	nextID     int

	calls       []string
	writeCalls  int
	failCreate  map[domain.OptionPair]string // option pair -> error message
	failStock   map[string]string            // inventory item ID -> error message
	failUpdates map[string]string            // variant ID -> error message
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products:    map[string]*fakeProduct{},
		byHandle:    map[string]string{},
		locationID:  "gid://fake/Location/1",
		failCreate:  map[domain.OptionPair]string{},
		failStock:   map[string]string{},
		failUpdates: map[string]string{},
	}
}

func (f *fakeCatalog) record(name string) {
	f.calls = append(f.calls, name)
}

func (f *fakeCatalog) FindProductByHandle(ctx context.Context, handle string) (*domain.CatalogProduct, error) {
	f.record("FindProductByHandle")
	id, ok := f.byHandle[handle]
	if !ok {
		return nil, nil
	}
	p := f.products[id]
	return &domain.CatalogProduct{ID: p.id, Title: p.title, Handle: p.handle}, nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, title, handle string) (string, error) {
	f.record("CreateProduct")
	f.writeCalls++
	f.nextID++
	id := fmt.Sprintf("gid://fake/Product/%d", f.nextID)
	f.products[id] = &fakeProduct{id: id, title: title, handle: handle}
	f.byHandle[handle] = id
	return id, nil
}

func (f *fakeCatalog) SetMetafields(ctx context.Context, ownerID string, metafields []domain.Metafield) error {
	f.record("SetMetafields")
	f.writeCalls++
	return nil
}

func (f *fakeCatalog) GetProductOptions(ctx context.Context, productID string) ([]domain.ProductOption, error) {
	f.record("GetProductOptions")
	p, ok := f.products[productID]
	if !ok {
		return nil, fmt.Errorf("product not found: %s", productID)
	}
	return p.options, nil
}

func (f *fakeCatalog) CreateProductOptions(ctx context.Context, productID string, options []domain.ProductOption, autoGenerateVariants bool) error {
	f.record("CreateProductOptions")
	f.writeCalls++
	p, ok := f.products[productID]
	if !ok {
		return fmt.Errorf("product not found: %s", productID)
	}
	p.options = append(p.options, options...)
	return nil
}

func (f *fakeCatalog) ListVariants(ctx context.Context, productID string) ([]domain.CatalogVariant, error) {
	f.record("ListVariants")
	p, ok := f.products[productID]
	if !ok {
		return nil, fmt.Errorf("product not found: %s", productID)
	}
	out := make([]domain.CatalogVariant, len(p.variants))
	copy(out, p.variants)
	return out, nil
}

func (f *fakeCatalog) BulkCreateVariants(ctx context.Context, productID string, inputs []domain.NewVariantInput) (*domain.BatchResult, error) {
	f.record("BulkCreateVariants")
	f.writeCalls++
	p, ok := f.products[productID]
	if !ok {
		return nil, fmt.Errorf("product not found: %s", productID)
	}
	result := &domain.BatchResult{}
	for _, in := range inputs {
		pair := domain.OptionPair{}
		for _, ov := range in.OptionValues {
			switch domain.OptionName(ov.Name) {
			case domain.OptionWax:
				pair.Wax = ov.Value
			case domain.OptionWick:
				pair.Wick = ov.Value
			}
		}
		if msg, fail := f.failCreate[pair]; fail {
			result.Errors = append(result.Errors, domain.BatchItemError{Message: msg})
			continue
		}
		f.nextID++
		v := domain.CatalogVariant{
			ID:              fmt.Sprintf("gid://fake/Variant/%d", f.nextID),
			Title:           pair.Wax + " / " + pair.Wick,
			SKU:             in.SKU,
			Price:           in.Price,
			InventoryItemID: fmt.Sprintf("gid://fake/InventoryItem/%d", f.nextID),
			SelectedOptions: in.OptionValues,
		}
		p.variants = append(p.variants, v)
		result.Variants = append(result.Variants, v)
	}
	return result, nil
}

func (f *fakeCatalog) BulkUpdateVariantPrices(ctx context.Context, productID string, updates []domain.PriceUpdateInput) (*domain.BatchResult, error) {
	f.record("BulkUpdateVariantPrices")
	f.writeCalls++
	p, ok := f.products[productID]
	if !ok {
		return nil, fmt.Errorf("product not found: %s", productID)
	}
	result := &domain.BatchResult{}
	for _, u := range updates {
		if msg, fail := f.failUpdates[u.VariantID]; fail {
			result.Errors = append(result.Errors, domain.BatchItemError{Message: msg})
			continue
		}
		for i := range p.variants {
			if p.variants[i].ID == u.VariantID {
				p.variants[i].Price = u.Price
				result.Variants = append(result.Variants, p.variants[i])
				break
			}
		}
	}
	return result, nil
}

func (f *fakeCatalog) ActivateInventory(ctx context.Context, inventoryItemID, locationID string, quantity int) error {
	f.record("ActivateInventory")
	f.writeCalls++
	if msg, fail := f.failStock[inventoryItemID]; fail {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func (f *fakeCatalog) GetPrimaryLocationID(ctx context.Context) (string, error) {
	f.record("GetPrimaryLocationID")
	return f.locationID, nil
}

// variantPrices projects a product's variants to option-pair -> price.
func (f *fakeCatalog) variantPrices(productID string) map[domain.OptionPair]string {
	out := map[domain.OptionPair]string{}
	for _, v := range f.products[productID].variants {
		wax, _ := v.OptionValue(domain.OptionWax)
		wick, _ := v.OptionValue(domain.OptionWick)
		out[domain.OptionPair{Wax: wax, Wick: wick}] = v.Price
	}
	return out
}

// --- in-memory repositories ---

type fakeVesselRepo struct {
	vessels []*domain.Vessel
}

func (r *fakeVesselRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vessel, error) {
	for _, v := range r.vessels {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "vessel", ID: id.String()}
}

func (r *fakeVesselRepo) GetByKey(ctx context.Context, name string, sizeOz float64) (*domain.Vessel, error) {
	for _, v := range r.vessels {
		if v.Name == name && v.SizeOz == sizeOz {
			return v, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "vessel", ID: domain.VesselKey(name, sizeOz)}
}

func (r *fakeVesselRepo) List(ctx context.Context) ([]*domain.Vessel, error) {
	return r.vessels, nil
}

func (r *fakeVesselRepo) ListActive(ctx context.Context) ([]*domain.Vessel, error) {
	var out []*domain.Vessel
	for _, v := range r.vessels {
		if v.IsActive {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVesselRepo) Create(ctx context.Context, vessel *domain.Vessel) error {
	if _, err := r.GetByKey(ctx, vessel.Name, vessel.SizeOz); err == nil {
		return &errors.ErrConflict{Message: "vessel already exists: " + vessel.Key()}
	}
	if vessel.ID == uuid.Nil {
		vessel.ID = uuid.New()
	}
	r.vessels = append(r.vessels, vessel)
	return nil
}

func (r *fakeVesselRepo) Update(ctx context.Context, vessel *domain.Vessel) error {
	return nil
}

func (r *fakeVesselRepo) UpdateBaseCost(ctx context.Context, id uuid.UUID, baseCostCents int64) error {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	v.BaseCostCents = baseCostCents
	return nil
}

func (r *fakeVesselRepo) UpdateShopifyProductID(ctx context.Context, id uuid.UUID, productID string) error {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	v.ShopifyProductID = &productID
	return nil
}

func (r *fakeVesselRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	v.IsActive = active
	return nil
}

type fakeWaxRepo struct {
	waxes []*domain.Wax
}

func (r *fakeWaxRepo) GetByName(ctx context.Context, name string) (*domain.Wax, error) {
	for _, w := range r.waxes {
		if w.Name == name {
			return w, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "wax", ID: name}
}

func (r *fakeWaxRepo) List(ctx context.Context) ([]*domain.Wax, error) {
	return r.waxes, nil
}

func (r *fakeWaxRepo) ListActive(ctx context.Context) ([]*domain.Wax, error) {
	var out []*domain.Wax
	for _, w := range r.waxes {
		if w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWaxRepo) Create(ctx context.Context, wax *domain.Wax) error {
	if wax.ID == uuid.Nil {
		wax.ID = uuid.New()
	}
	r.waxes = append(r.waxes, wax)
	return nil
}

func (r *fakeWaxRepo) UpdatePrice(ctx context.Context, name string, pricePerOzCents int64) error {
	w, err := r.GetByName(ctx, name)
	if err != nil {
		return err
	}
	w.PricePerOzCents = pricePerOzCents
	return nil
}

func (r *fakeWaxRepo) SetActive(ctx context.Context, name string, active bool) error {
	w, err := r.GetByName(ctx, name)
	if err != nil {
		return err
	}
	w.IsActive = active
	return nil
}

type fakeWickRepo struct {
	wicks []*domain.Wick
}

func (r *fakeWickRepo) GetByName(ctx context.Context, name string) (*domain.Wick, error) {
	for _, w := range r.wicks {
		if w.Name == name {
			return w, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "wick", ID: name}
}

func (r *fakeWickRepo) List(ctx context.Context) ([]*domain.Wick, error) {
	return r.wicks, nil
}

func (r *fakeWickRepo) ListActive(ctx context.Context) ([]*domain.Wick, error) {
	var out []*domain.Wick
	for _, w := range r.wicks {
		if w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWickRepo) Create(ctx context.Context, wick *domain.Wick) error {
	if wick.ID == uuid.Nil {
		wick.ID = uuid.New()
	}
	r.wicks = append(r.wicks, wick)
	return nil
}

func (r *fakeWickRepo) UpdateCost(ctx context.Context, name string, costCents int64) error {
	w, err := r.GetByName(ctx, name)
	if err != nil {
		return err
	}
	w.CostCents = costCents
	return nil
}

func (r *fakeWickRepo) SetActive(ctx context.Context, name string, active bool) error {
	w, err := r.GetByName(ctx, name)
	if err != nil {
		return err
	}
	w.IsActive = active
	return nil
}

func newFakeRepos(vessels []*domain.Vessel, waxes []*domain.Wax, wicks []*domain.Wick) *repository.Repositories {
	return &repository.Repositories{
		Vessel: &fakeVesselRepo{vessels: vessels},
		Wax:    &fakeWaxRepo{waxes: waxes},
		Wick:   &fakeWickRepo{wicks: wicks},
	}
}
