package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderEventOutbox stores order events written in the same transaction as
// the aggregate that recorded them.
type OrderEventOutbox interface {
	// Append stores events as unpublished.
	Append(ctx context.Context, events []order.Event) error

	// GetUnpublished locks and returns up to limit unpublished events, oldest
	// first. Rows locked by another relay are skipped.
	GetUnpublished(ctx context.Context, limit int) ([]order.Event, error)

	// MarkPublished stamps the events as delivered to the broker.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error

	// MarkFailed records a failed delivery attempt.
	MarkFailed(ctx context.Context, ids []kernel.UUID, cause error) error
}

// OrderEventPublisher delivers order events to the message broker.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events []order.Event) error
}
