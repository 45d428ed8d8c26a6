package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// EventType names a fact published on the order events topic.
type EventType string

const (
	// OrderPlaced is recorded when checkout creates an order.
	OrderPlaced EventType = "OrderPlaced"

	// DeliveryCompleted is recorded when a line is handed over.
	DeliveryCompleted EventType = "DeliveryCompleted"
)

// Event is a fact recorded by the aggregate. Events never carry delivery
// codes or their digests.
type Event struct {
	ID         kernel.UUID
	Type       EventType
	OrderID    kernel.UUID
	BuyerID    kernel.UUID
	ProductIDs []kernel.UUID
	OccurredAt time.Time
}

func newEvent(eventType EventType, o *Order, productIDs []kernel.UUID, at time.Time) Event {
	return Event{
		ID:         kernel.NewUUID(),
		Type:       eventType,
		OrderID:    o.id,
		BuyerID:    o.buyerID,
		ProductIDs: productIDs,
		OccurredAt: at,
	}
}
