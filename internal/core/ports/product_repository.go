package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

// ProductRepository is the slice of the product store the order workflow needs.
// Listing edits belong to the catalog and are not part of it.
type ProductRepository interface {
	// Add persists a new listing.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetMany retrieves the products that exist among ids. Missing ids are
	// simply absent from the result.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)

	// UpdateStatusIfAvailable stores the trading status of a product that was
	// sold in memory, but only if the stored row is still available. A lost race
	// returns product.ErrProductIsNotAvailable.
	UpdateStatusIfAvailable(ctx context.Context, aggregate *product.Product) error
}
