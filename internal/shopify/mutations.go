package shopify

// ProductCreateMutation creates a new product shell (options and variants
// are added separately).
const ProductCreateMutation = `
mutation productCreate($input: ProductInput!) {
  productCreate(input: $input) {
    product {
      id
      title
      handle
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductOptionsCreateMutation adds option axes to a product.
const ProductOptionsCreateMutation = `
mutation productOptionsCreate($productId: ID!, $options: [OptionCreateInput!]!, $variantStrategy: ProductOptionCreateVariantStrategy) {
  productOptionsCreate(productId: $productId, options: $options, variantStrategy: $variantStrategy) {
    product {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductVariantsBulkCreateMutation creates variants in one batch.
const ProductVariantsBulkCreateMutation = `
mutation productVariantsBulkCreate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkCreate(productId: $productId, variants: $variants) {
    productVariants {
      id
      title
      sku
      price
      inventoryItem {
        id
      }
      selectedOptions {
        name
        value
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductVariantsBulkUpdateMutation updates variant prices in one batch.
const ProductVariantsBulkUpdateMutation = `
mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    productVariants {
      id
      price
    }
    userErrors {
      field
      message
    }
  }
}
`

// MetafieldsSetMutation sets metafields on a resource (e.g. a vessel
// product's base cost, margin, supplier and size).
const MetafieldsSetMutation = `
mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// InventoryActivateMutation activates inventory tracking for an inventory
// item at a location with an opening quantity.
const InventoryActivateMutation = `
mutation inventoryActivate($inventoryItemId: ID!, $locationId: ID!, $available: Int) {
  inventoryActivate(inventoryItemId: $inventoryItemId, locationId: $locationId, available: $available) {
    inventoryLevel {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`
