package acl

// Metafield holding the secondary quote status.
const (
	statusNamespace     = "custom"
	statusKey           = "quote_status"
	statusMetafieldType = "list.single_line_text_field"
)

// Page sizes.
const (
	draftOrdersPageSize = 100
	locationsPageSize   = 50
)

const queryDraftOrders = `query getDraftOrders($first: Int!, $query: String) {
  draftOrders(first: $first, query: $query, sortKey: UPDATED_AT, reverse: true) {
    edges {
      node {
        id
        name
        createdAt
        status
        tags
        note2
        email
        totalPrice
        metafield(namespace: "custom", key: "quote_status") {
          value
        }
        customer {
          id
          firstName
          lastName
          email
          defaultAddress {
            company
          }
        }
        purchasingEntity {
          __typename
          ... on PurchasingCompany {
            company {
              name
            }
            location {
              id
              name
            }
          }
          ... on Customer {
            defaultAddress {
              company
            }
          }
        }
        lineItems(first: 10) {
          edges {
            node {
              id
              title
              quantity
              variant {
                id
                image {
                  url
                  altText
                }
              }
            }
          }
        }
      }
    }
  }
}`

const queryDraftOrder = `query getDraftOrder($id: ID!) {
  draftOrder(id: $id) {
    ` + draftOrderFields + `
  }
}`

const mutationDraftOrderUpdate = `mutation draftOrderUpdate($id: ID!, $input: DraftOrderInput!) {
  draftOrderUpdate(id: $id, input: $input) {
    draftOrder {
      ` + draftOrderFields + `
    }
    userErrors {
      field
      message
    }
  }
}`

const mutationMetafieldsSet = `mutation updateQuoteStatus($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields {
      id
      key
      namespace
      value
      type
    }
    userErrors {
      field
      message
    }
  }
}`

const mutationDraftOrderInvoiceSend = `mutation draftOrderInvoiceSend($id: ID!, $email: EmailInput) {
  draftOrderInvoiceSend(id: $id, email: $email) {
    draftOrder {
      id
      invoiceUrl
    }
    userErrors {
      field
      message
    }
  }
}`

const mutationDraftOrderComplete = `mutation draftOrderComplete($id: ID!) {
  draftOrderComplete(id: $id) {
    draftOrder {
      id
      status
      invoiceUrl
      order {
        id
      }
    }
    userErrors {
      field
      message
    }
  }
}`

const queryPaymentTermsTemplates = `query paymentTermsTemplates {
  paymentTermsTemplates {
    id
    name
    translatedName
    dueInDays
  }
}`

const queryDraftOrderPaymentTerms = `query draftOrderPaymentTerms($id: ID!) {
  draftOrder(id: $id) {
    id
    paymentTerms {
      id
      paymentTermsName
      translatedName
      dueInDays
    }
  }
}`

const mutationSetPaymentTerms = `mutation setDraftOrderPaymentTerms($id: ID!, $input: DraftOrderInput!) {
  draftOrderUpdate(id: $id, input: $input) {
    draftOrder {
      id
      paymentTerms {
        id
        paymentTermsName
        translatedName
        dueInDays
      }
    }
    userErrors {
      field
      message
    }
  }
}`

const queryProducts = `query getProducts($query: String, $first: Int!, $context: ContextualPricingContext!) {
  products(first: $first, query: $query) {
    edges {
      node {
        id
        title
        handle
        featuredImage {
          url
          altText
        }
        priceRangeV2 {
          minVariantPrice {
            amount
            currencyCode
          }
        }
        variants(first: 1) {
          edges {
            node {
              id
              price
              inventoryItem {
                id
              }
              contextualPricing(context: $context) {
                price {
                  amount
                  currencyCode
                }
              }
            }
          }
        }
      }
    }
  }
}`

const queryCompanyLocations = `query getCompanyLocations($first: Int!) {
  companyLocations(first: $first) {
    edges {
      node {
        id
        name
      }
    }
  }
}`

// draftOrderFields is the full selection used wherever a whole quote is read.
const draftOrderFields = `id
    name
    createdAt
    status
    tags
    note2
    email
    metafield(namespace: "custom", key: "quote_status") {
      value
    }
    paymentTerms {
      id
      paymentTermsName
      translatedName
      dueInDays
    }
    customer {
      id
      firstName
      lastName
      email
      phone
      defaultAddress {
        company
      }
    }
    shippingAddress {
      name
      company
      address1
      address2
      city
      provinceCode
      zip
      country
      phone
    }
    billingAddress {
      name
      company
      address1
      address2
      city
      provinceCode
      zip
      country
      phone
    }
    purchasingEntity {
      __typename
      ... on PurchasingCompany {
        company {
          name
        }
        location {
          id
          name
        }
      }
      ... on Customer {
        defaultAddress {
          company
        }
      }
    }
    lineItems(first: 100) {
      edges {
        node {
          id
          title
          quantity
          originalUnitPrice
          requiresShipping
          taxable
          image {
            url
            altText
          }
          variant {
            id
            image {
              url
              altText
            }
          }
        }
      }
    }
    appliedDiscount {
      description
      valueType
      value
    }
    shippingLine {
      title
      price
    }
    taxLines {
      title
      rate
      ratePercentage
      source
      priceSet {
        shopMoney {
          amount
          currencyCode
        }
      }
    }
    subtotalPrice
    totalPrice
    totalTax
    totalShippingPrice
    totalDiscountsSet {
      shopMoney {
        amount
        currencyCode
      }
    }`
