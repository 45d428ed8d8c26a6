// Package orderrepo persists order aggregates in two tables: orders and
// order_lines. Lines only ever store the digest of their delivery code.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null;index"`
	Lines     []LineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is the order_lines row. Position keeps checkout order.
type LineDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position   int       `gorm:"not null"`
	CodeDigest string    `gorm:"type:char(64);not null"`
	Status     int       `gorm:"not null;index"`
}

func (LineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	lines := make([]LineDTO, 0, len(aggregate.Lines()))
	for i, l := range aggregate.Lines() {
		lines = append(lines, LineDTO{
			OrderID:    orderID,
			ProductID:  l.ProductID().Bytes(),
			Position:   i,
			CodeDigest: l.Digest().String(),
			Status:     int(l.Status()),
		})
	}

	return OrderDTO{
		ID:        orderID,
		BuyerID:   aggregate.Buyer().Bytes(),
		CreatedAt: aggregate.CreatedAt(),
		Lines:     lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		l, lineErr := lineToDomain(lineDto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, l)
	}

	return order.RestoreOrder(id, buyerID, dto.CreatedAt, lines)
}

func lineToDomain(dto LineDTO) (*order.Line, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	digest, err := kernel.CodeDigestFromString(dto.CodeDigest)
	if err != nil {
		return nil, err
	}

	return order.RestoreLine(productID, digest, order.LineStatus(dto.Status))
}
