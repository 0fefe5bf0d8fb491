package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
)

const variantPageSize = 250

// CatalogStore implements the engine's catalog sync boundary against the
// Shopify Admin GraphQL API.
type CatalogStore struct {
	client *Client
	logger *zap.Logger
}

// NewCatalogStore creates a Shopify-backed catalog store
func NewCatalogStore(cfg config.ShopifyConfig, logger *zap.Logger) *CatalogStore {
	return &CatalogStore{
		client: NewClient(cfg, logger),
		logger: logger,
	}
}

// FindProductByHandle returns the product with the given handle, or nil
// if no such product exists.
func (s *CatalogStore) FindProductByHandle(ctx context.Context, handle string) (*domain.CatalogProduct, error) {
	resp, err := s.client.Execute(ctx, ProductByHandleQuery, map[string]interface{}{
		"handle": handle,
	})
	if err != nil {
		return nil, fmt.Errorf("product lookup by handle: %w", err)
	}

	var result struct {
		ProductByHandle *struct {
			ID     string `json:"id"`
			Title  string `json:"title"`
			Handle string `json:"handle"`
		} `json:"productByHandle"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse productByHandle response: %w", err)
	}
	if result.ProductByHandle == nil {
		return nil, nil
	}
	return &domain.CatalogProduct{
		ID:     result.ProductByHandle.ID,
		Title:  result.ProductByHandle.Title,
		Handle: result.ProductByHandle.Handle,
	}, nil
}

// CreateProduct creates a product and returns its ID.
func (s *CatalogStore) CreateProduct(ctx context.Context, title, handle string) (string, error) {
	resp, err := s.client.Execute(ctx, ProductCreateMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"title":  title,
			"handle": handle,
			"status": "ACTIVE",
		},
	})
	if err != nil {
		return "", fmt.Errorf("productCreate: %w", err)
	}

	var result struct {
		ProductCreate struct {
			Product *struct {
				ID string `json:"id"`
			} `json:"product"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"productCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", fmt.Errorf("parse productCreate response: %w", err)
	}
	if err := userErrorsToError("productCreate", result.ProductCreate.UserErrors); err != nil {
		return "", err
	}
	if result.ProductCreate.Product == nil || result.ProductCreate.Product.ID == "" {
		return "", fmt.Errorf("productCreate returned empty product id")
	}
	s.logger.Info("Created catalog product", zap.String("title", title), zap.String("product_id", result.ProductCreate.Product.ID))
	return result.ProductCreate.Product.ID, nil
}

// SetMetafields writes metafields on a catalog resource.
func (s *CatalogStore) SetMetafields(ctx context.Context, ownerID string, metafields []domain.Metafield) error {
	inputs := make([]map[string]interface{}, 0, len(metafields))
	for _, m := range metafields {
		inputs = append(inputs, map[string]interface{}{
			"ownerId":   ownerID,
			"namespace": m.Namespace,
			"key":       m.Key,
			"type":      m.Type,
			"value":     m.Value,
		})
	}

	resp, err := s.client.Execute(ctx, MetafieldsSetMutation, map[string]interface{}{
		"metafields": inputs,
	})
	if err != nil {
		return fmt.Errorf("metafieldsSet: %w", err)
	}

	var result struct {
		MetafieldsSet struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"metafieldsSet"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("parse metafieldsSet response: %w", err)
	}
	return userErrorsToError("metafieldsSet", result.MetafieldsSet.UserErrors)
}

// GetProductOptions fetches the option axes defined on a product.
func (s *CatalogStore) GetProductOptions(ctx context.Context, productID string) ([]domain.ProductOption, error) {
	resp, err := s.client.Execute(ctx, ProductOptionsQuery, map[string]interface{}{
		"id": productID,
	})
	if err != nil {
		return nil, fmt.Errorf("get product options: %w", err)
	}

	var result struct {
		Product *struct {
			Options []struct {
				Name   string   `json:"name"`
				Values []string `json:"values"`
			} `json:"options"`
		} `json:"product"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse product options response: %w", err)
	}
	if result.Product == nil {
		return nil, fmt.Errorf("product not found: %s", productID)
	}

	options := make([]domain.ProductOption, 0, len(result.Product.Options))
	for _, o := range result.Product.Options {
		options = append(options, domain.ProductOption{Name: o.Name, Values: o.Values})
	}
	return options, nil
}

// CreateProductOptions adds option axes to a product. When
// autoGenerateVariants is false, the catalog leaves the variant matrix to
// the caller.
func (s *CatalogStore) CreateProductOptions(ctx context.Context, productID string, options []domain.ProductOption, autoGenerateVariants bool) error {
	inputs := make([]map[string]interface{}, 0, len(options))
	for _, o := range options {
		values := make([]map[string]interface{}, 0, len(o.Values))
		for _, v := range o.Values {
			values = append(values, map[string]interface{}{"name": v})
		}
		inputs = append(inputs, map[string]interface{}{
			"name":   o.Name,
			"values": values,
		})
	}

	strategy := "LEAVE_AS_IS"
	if autoGenerateVariants {
		strategy = "CREATE"
	}

	resp, err := s.client.Execute(ctx, ProductOptionsCreateMutation, map[string]interface{}{
		"productId":       productID,
		"options":         inputs,
		"variantStrategy": strategy,
	})
	if err != nil {
		return fmt.Errorf("productOptionsCreate: %w", err)
	}

	var result struct {
		ProductOptionsCreate struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"productOptionsCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("parse productOptionsCreate response: %w", err)
	}
	return userErrorsToError("productOptionsCreate", result.ProductOptionsCreate.UserErrors)
}

type variantNode struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	SKU           string `json:"sku"`
	Price         string `json:"price"`
	InventoryItem struct {
		ID string `json:"id"`
	} `json:"inventoryItem"`
	SelectedOptions []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"selectedOptions"`
}

func (n variantNode) toDomain() domain.CatalogVariant {
	v := domain.CatalogVariant{
		ID:              n.ID,
		Title:           n.Title,
		SKU:             n.SKU,
		Price:           n.Price,
		InventoryItemID: n.InventoryItem.ID,
	}
	for _, o := range n.SelectedOptions {
		v.SelectedOptions = append(v.SelectedOptions, domain.SelectedOption{Name: o.Name, Value: o.Value})
	}
	return v
}

// ListVariants fetches every variant of a product, paging as needed.
func (s *CatalogStore) ListVariants(ctx context.Context, productID string) ([]domain.CatalogVariant, error) {
	var variants []domain.CatalogVariant
	cursor := ""

	for {
		variables := map[string]interface{}{
			"id":    productID,
			"first": variantPageSize,
		}
		if cursor != "" {
			variables["after"] = cursor
		}

		resp, err := s.client.Execute(ctx, ProductVariantsQuery, variables)
		if err != nil {
			return nil, fmt.Errorf("list variants: %w", err)
		}

		var result struct {
			Product *struct {
				Variants struct {
					PageInfo struct {
						HasNextPage bool   `json:"hasNextPage"`
						EndCursor   string `json:"endCursor"`
					} `json:"pageInfo"`
					Edges []struct {
						Node variantNode `json:"node"`
					} `json:"edges"`
				} `json:"variants"`
			} `json:"product"`
		}
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return nil, fmt.Errorf("parse variants response: %w", err)
		}
		if result.Product == nil {
			return nil, fmt.Errorf("product not found: %s", productID)
		}

		for _, edge := range result.Product.Variants.Edges {
			variants = append(variants, edge.Node.toDomain())
		}

		if !result.Product.Variants.PageInfo.HasNextPage || result.Product.Variants.PageInfo.EndCursor == "" {
			break
		}
		cursor = result.Product.Variants.PageInfo.EndCursor
	}

	return variants, nil
}

// BulkCreateVariants creates variants in one batch. Per-item userErrors
// are returned in the BatchResult, not as a hard error.
func (s *CatalogStore) BulkCreateVariants(ctx context.Context, productID string, inputs []domain.NewVariantInput) (*domain.BatchResult, error) {
	variants := make([]map[string]interface{}, 0, len(inputs))
	for _, in := range inputs {
		optionValues := make([]map[string]interface{}, 0, len(in.OptionValues))
		for _, ov := range in.OptionValues {
			optionValues = append(optionValues, map[string]interface{}{
				"optionName": ov.Name,
				"name":       ov.Value,
			})
		}
		variant := map[string]interface{}{
			"optionValues": optionValues,
			"price":        in.Price,
		}
		if in.SKU != "" {
			variant["inventoryItem"] = map[string]interface{}{"sku": in.SKU}
		}
		variants = append(variants, variant)
	}

	resp, err := s.client.Execute(ctx, ProductVariantsBulkCreateMutation, map[string]interface{}{
		"productId": productID,
		"variants":  variants,
	})
	if err != nil {
		return nil, fmt.Errorf("productVariantsBulkCreate: %w", err)
	}

	var result struct {
		ProductVariantsBulkCreate struct {
			ProductVariants []variantNode `json:"productVariants"`
			UserErrors      []UserError   `json:"userErrors"`
		} `json:"productVariantsBulkCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse productVariantsBulkCreate response: %w", err)
	}

	return batchResult(result.ProductVariantsBulkCreate.ProductVariants, result.ProductVariantsBulkCreate.UserErrors), nil
}

// BulkUpdateVariantPrices writes variant prices in one batch. Per-item
// userErrors are returned in the BatchResult, not as a hard error.
func (s *CatalogStore) BulkUpdateVariantPrices(ctx context.Context, productID string, updates []domain.PriceUpdateInput) (*domain.BatchResult, error) {
	variants := make([]map[string]interface{}, 0, len(updates))
	for _, u := range updates {
		variants = append(variants, map[string]interface{}{
			"id":    u.VariantID,
			"price": u.Price,
		})
	}

	resp, err := s.client.Execute(ctx, ProductVariantsBulkUpdateMutation, map[string]interface{}{
		"productId": productID,
		"variants":  variants,
	})
	if err != nil {
		return nil, fmt.Errorf("productVariantsBulkUpdate: %w", err)
	}

	var result struct {
		ProductVariantsBulkUpdate struct {
			ProductVariants []variantNode `json:"productVariants"`
			UserErrors      []UserError   `json:"userErrors"`
		} `json:"productVariantsBulkUpdate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse productVariantsBulkUpdate response: %w", err)
	}

	return batchResult(result.ProductVariantsBulkUpdate.ProductVariants, result.ProductVariantsBulkUpdate.UserErrors), nil
}

// ActivateInventory starts inventory tracking for an item at a location.
func (s *CatalogStore) ActivateInventory(ctx context.Context, inventoryItemID, locationID string, quantity int) error {
	resp, err := s.client.Execute(ctx, InventoryActivateMutation, map[string]interface{}{
		"inventoryItemId": inventoryItemID,
		"locationId":      locationID,
		"available":       quantity,
	})
	if err != nil {
		return fmt.Errorf("inventoryActivate: %w", err)
	}

	var result struct {
		InventoryActivate struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"inventoryActivate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("parse inventoryActivate response: %w", err)
	}
	return userErrorsToError("inventoryActivate", result.InventoryActivate.UserErrors)
}

// GetPrimaryLocationID returns the shop's default stock location.
func (s *CatalogStore) GetPrimaryLocationID(ctx context.Context) (string, error) {
	resp, err := s.client.Execute(ctx, PrimaryLocationQuery, nil)
	if err != nil {
		return "", fmt.Errorf("get primary location: %w", err)
	}

	var result struct {
		Location *struct {
			ID string `json:"id"`
		} `json:"location"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", fmt.Errorf("parse location response: %w", err)
	}
	if result.Location == nil || result.Location.ID == "" {
		return "", fmt.Errorf("shop has no primary location")
	}
	return result.Location.ID, nil
}

func batchResult(nodes []variantNode, errs []UserError) *domain.BatchResult {
	out := &domain.BatchResult{}
	for _, n := range nodes {
		out.Variants = append(out.Variants, n.toDomain())
	}
	for _, e := range errs {
		out.Errors = append(out.Errors, domain.BatchItemError{
			Field:   strings.Join(e.Field, "."),
			Message: e.Message,
		})
	}
	return out
}
