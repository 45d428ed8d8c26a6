// Package services provides domain services that coordinate several aggregates
// of the marketplace in one business step.
//
// The package includes:
//   - CheckoutDesk: turns a buyer and the products they picked into an Order,
//     selling every product and minting a delivery code per line
//
// Domain services change aggregates in memory only. Persisting the result, and
// guarding it against concurrent writers, is left to the application layer.
package services
