// Package order implements the escrow side of a purchase: the Order aggregate
// created at checkout and the per-product delivery state it carries until the
// buyer and seller meet.
//
// The package includes:
//   - Order: aggregate root linking a buyer to the products bought in one checkout
//   - Line: one product of an order with its delivery code digest and status
//   - LineStatus: state machine In process -> Completed
//   - Event: facts recorded by the aggregate for the order events outbox
//
// Key business rules:
//   - An order has at least one line and never lists a product twice
//   - A line only stores the digest of its delivery code, never the code
//   - A line completes once, when the presented code matches its digest
//   - A wrong code never changes state, however often it is presented
//   - Codes of pending lines can be rotated; the previous code stops matching
//   - Completed lines cannot be rotated or completed again
package order
