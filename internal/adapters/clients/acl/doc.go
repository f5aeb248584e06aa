// Package acl is the anti-corruption layer between the commerce platform's
// GraphQL Admin API and the domain.
//
// GraphQL documents, response DTOs, and the translation in both directions
// live here and nowhere else. Callers above this package see only domain
// types and domain errors:
//
//   - [DraftOrderAdapter] implements ports.DraftOrderRepository and
//     ports.PaymentTermsRepository over draft orders.
//   - [CatalogAdapter] implements ports.Catalog over products and company
//     locations.
//
// Edits travel the other way: a domain.QuoteEdit becomes a DraftOrderInput
// variable, with catalog items sent by variant and custom items by title and
// price in the configured currency.
//
// # Error handling
//
// The gateway already reports every upstream failure as a
// *domain.RemoteError. Adapters add two cases of their own:
//
//   - a query that resolves to null becomes [domain.ErrNotFound]
//   - a payload that cannot be decoded becomes a RemoteError for the
//     operation that produced it
package acl
