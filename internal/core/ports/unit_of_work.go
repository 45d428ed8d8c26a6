package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin share its transaction. Events recorded by aggregates passed to the
// order repository are appended to the outbox on Commit.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit flushes pending order events and commits the transaction.
	Commit(ctx context.Context) error

	// Rollback discards the transaction.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ProductRepository() ProductRepository
	UserRepository() UserRepository
	OrderEventOutbox() OrderEventOutbox
}
