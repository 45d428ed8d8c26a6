// Package ports defines the persistence and messaging contracts of the
// marketplace core. Adapters implement them; command and query handlers
// depend on them.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with all of its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes back the modified lines of an order. Every write is
	// conditional on the line still being in process, so a line completed or
	// rotated by a concurrent request yields order.ErrLineAlreadyCompleted.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetLatestByProduct retrieves the most recently created order that has a
	// line for productID.
	GetLatestByProduct(ctx context.Context, productID kernel.UUID) (*order.Order, error)

	// GetActiveByBuyer retrieves the buyer's orders with at least one line in
	// process, oldest first. Completed lines are included in the aggregates.
	GetActiveByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error)
}
