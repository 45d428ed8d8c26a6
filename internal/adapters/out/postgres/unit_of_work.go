// Package postgres implements the Unit of Work over GORM. Repositories handed
// out after Begin share one transaction; order events recorded by the
// aggregates they wrote are appended to the outbox right before Commit, so an
// order change and its events are stored together or not at all.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance must stay on one goroutine.
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// eventSource is implemented by aggregates that record order events.
type eventSource interface {
	Events() []order.Event
	MarkPersisted()
}

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one *gorm.DB.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no transaction and nothing tracked.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// written inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit appends the events of tracked aggregates to the outbox and commits.
// If the outbox write fails the transaction stays open for Rollback.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushEvents(ctx); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, tracked := range uow.trackedAggregates {
		if source, ok := tracked.Aggregate.(eventSource); ok {
			source.MarkPersisted()
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	return nil
}

// Rollback discards the transaction and forgets tracked aggregates.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderEventOutbox() ports.OrderEventOutbox {
	return outboxrepo.NewGormOrderEventOutbox(uow.conn())
}

// TrackAggregate registers an aggregate written by a repository. Writing the
// same aggregate twice tracks it once.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for i := range uow.trackedAggregates {
		if uow.trackedAggregates[i].ID.IsEqual(id) {
			uow.trackedAggregates[i].Aggregate = aggregate
			return
		}
	}

	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) flushEvents(ctx context.Context) error {
	var events []order.Event
	for _, tracked := range uow.trackedAggregates {
		if source, ok := tracked.Aggregate.(eventSource); ok {
			events = append(events, source.Events()...)
		}
	}

	return outboxrepo.NewGormOrderEventOutbox(uow.tx).Append(ctx, events)
}

// conn returns the transaction when one is open, the plain pool otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
