// Package commands contains the operations that change marketplace state.
// Every handler follows the same shape: validate the command, open a unit of
// work, load aggregates, let the domain decide, write back, commit.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	OutboxFactory interface {
		OrderEventOutbox() ports.OrderEventOutbox
	}

	// OrderUoW is used by commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans orders, products and users.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   products := uow.ProductRepository()
	//   orders := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		UserRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// OutboxUoW is used by the order events relay.
	OutboxUoW interface {
		TxManager
		OutboxFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
