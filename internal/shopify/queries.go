package shopify

// ProductByHandleQuery looks up a product by its storefront handle.
const ProductByHandleQuery = `
query getProductByHandle($handle: String!) {
  productByHandle(handle: $handle) {
    id
    title
    handle
  }
}
`

// ProductOptionsQuery fetches a product's option axes.
const ProductOptionsQuery = `
query getProductOptions($id: ID!) {
  product(id: $id) {
    id
    options {
      name
      values
    }
  }
}
`

// ProductVariantsQuery fetches a product's variants with their selected
// options, price, sku and inventory item. Pages through pageInfo/endCursor.
const ProductVariantsQuery = `
query getProductVariants($id: ID!, $first: Int!, $after: String) {
  product(id: $id) {
    variants(first: $first, after: $after) {
      pageInfo {
        hasNextPage
        endCursor
      }
      edges {
        node {
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
      }
    }
  }
}
`

// PrimaryLocationQuery fetches the shop's default stock location.
const PrimaryLocationQuery = `
query getPrimaryLocation {
  location {
    id
  }
}
`
