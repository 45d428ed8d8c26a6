// Package outboxrepo stores order events in the order_events table until the
// relay job has handed them to the broker.
package outboxrepo

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderEventDTO is the order_events row.
type OrderEventDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EventType    string          `gorm:"type:varchar(64);not null"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Payload      json.RawMessage `gorm:"type:jsonb;not null"`
	OccurredAt   time.Time       `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"autoCreateTime;index"`
	PublishedAt  *time.Time      `gorm:"index"`
	AttemptCount int             `gorm:"not null;default:0"`
	LastError    *string
}

func (OrderEventDTO) TableName() string {
	return "order_events"
}

// payloadDTO is the stable JSON body of an event. It is also what the broker
// receives.
type payloadDTO struct {
	Version    int         `json:"version"`
	EventID    uuid.UUID   `json:"eventId"`
	Type       string      `json:"type"`
	OrderID    uuid.UUID   `json:"orderId"`
	BuyerID    uuid.UUID   `json:"buyerId"`
	ProductIDs []uuid.UUID `json:"productIds"`
	OccurredAt time.Time   `json:"occurredAt"`
}

const payloadVersion = 1

func fromDomain(event order.Event) (OrderEventDTO, error) {
	productIDs := make([]uuid.UUID, 0, len(event.ProductIDs))
	for _, id := range event.ProductIDs {
		productIDs = append(productIDs, id.Bytes())
	}

	payload, err := json.Marshal(payloadDTO{
		Version:    payloadVersion,
		EventID:    event.ID.Bytes(),
		Type:       string(event.Type),
		OrderID:    event.OrderID.Bytes(),
		BuyerID:    event.BuyerID.Bytes(),
		ProductIDs: productIDs,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return OrderEventDTO{}, err
	}

	return OrderEventDTO{
		ID:         event.ID.Bytes(),
		EventType:  string(event.Type),
		OrderID:    event.OrderID.Bytes(),
		Payload:    payload,
		OccurredAt: event.OccurredAt,
	}, nil
}

func toDomain(dto OrderEventDTO) (order.Event, error) {
	var payload payloadDTO
	if err := json.Unmarshal(dto.Payload, &payload); err != nil {
		return order.Event{}, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Event{}, err
	}
	orderID, err := kernel.UUIDFromBytes(payload.OrderID[:])
	if err != nil {
		return order.Event{}, err
	}
	buyerID, err := kernel.UUIDFromBytes(payload.BuyerID[:])
	if err != nil {
		return order.Event{}, err
	}

	productIDs := make([]kernel.UUID, 0, len(payload.ProductIDs))
	for _, raw := range payload.ProductIDs {
		productID, productErr := kernel.UUIDFromBytes(raw[:])
		if productErr != nil {
			return order.Event{}, productErr
		}
		productIDs = append(productIDs, productID)
	}

	return order.Event{
		ID:         id,
		Type:       order.EventType(dto.EventType),
		OrderID:    orderID,
		BuyerID:    buyerID,
		ProductIDs: productIDs,
		OccurredAt: dto.OccurredAt,
	}, nil
}
