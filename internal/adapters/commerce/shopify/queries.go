package shopify

const productFragment = `
fragment ProductFields on Product {
  id
  title
  handle
  description
  priceRange {
    minVariantPrice {
      amount
      currencyCode
    }
  }
  featuredImage {
    url
    altText
  }
  metafieldMissionLabel: metafield(namespace: "bbc", key: "mission_label") {
    value
  }
  metafieldMissionSlug: metafield(namespace: "bbc", key: "mission_slug") {
    value
  }
}
`

const cartFragment = `
fragment CartFields on Cart {
  id
  checkoutUrl
  cost {
    subtotalAmount {
      amount
      currencyCode
    }
  }
  lines(first: 50) {
    edges {
      node {
        id
        quantity
        merchandise {
          ... on ProductVariant {
            id
            title
            product {
              handle
              title
              featuredImage {
                url
                altText
              }
            }
            priceV2 {
              amount
              currencyCode
            }
          }
        }
      }
    }
  }
}
`

const collectionQuery = `
query GetCollectionByHandle($handle: String!, $first: Int!) {
  collection(handle: $handle) {
    handle
    title
    description
    products(first: $first) {
      edges {
        node {
          ...ProductFields
        }
      }
    }
  }
}
` + productFragment

const productQuery = `
query GetProductByHandle($handle: String!) {
  product(handle: $handle) {
    ...ProductFields
    variants(first: 10) {
      edges {
        node {
          id
          title
          priceV2 {
            amount
            currencyCode
          }
        }
      }
    }
  }
}
` + productFragment

const searchQuery = `
query SearchProducts($query: String!, $first: Int!) {
  products(first: $first, query: $query) {
    edges {
      node {
        ...ProductFields
      }
    }
  }
}
` + productFragment

const cartQuery = `
query getCart($cartId: ID!) {
  cart(id: $cartId) {
    ...CartFields
  }
}
` + cartFragment

const cartCreateMutation = `
mutation cartCreate {
  cartCreate {
    cart {
      ...CartFields
    }
    userErrors {
      field
      message
    }
  }
}
` + cartFragment

const cartLinesAddMutation = `
mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {
      ...CartFields
    }
    userErrors {
      field
      message
    }
  }
}
` + cartFragment

const cartLinesUpdateMutation = `
mutation cartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart {
      ...CartFields
    }
    userErrors {
      field
      message
    }
  }
}
` + cartFragment

const cartLinesRemoveMutation = `
mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart {
      ...CartFields
    }
    userErrors {
      field
      message
    }
  }
}
` + cartFragment
