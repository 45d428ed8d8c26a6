// Package product models a marketplace listing as seen by the order workflow.
//
// Listing CRUD lives outside this service; here a Product only needs its
// identity, the fields shown on deliveries, its seller, and a TradingStatus
// that moves from Available to Sold exactly once per successful checkout.
package product
