package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
)

// UserRepository is the slice of the account store the order workflow needs.
type UserRepository interface {
	// Add persists a new user together with its cart.
	Add(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetMany retrieves the users that exist among ids.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*user.User, error)

	// UpdateCart replaces the stored cart with the user's current one.
	UpdateCart(ctx context.Context, aggregate *user.User) error
}
