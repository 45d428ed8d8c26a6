// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and read straight from the tables.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetSellerDeliveriesQueryIsNotConstructed = errors.New(
		"GetSellerDeliveriesQuery must be created via NewGetSellerDeliveriesQuery constructor",
	)
)

// GetSellerDeliveriesQuery lists the sold products a seller still has to hand over.
//
// Example:
//
//	query, err := NewGetSellerDeliveriesQuery(sellerID)
//	if err != nil {
//	    return err
//	}
//	deliveries, err := handler.Handle(ctx, query)
type GetSellerDeliveriesQuery struct {
	sellerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSellerDeliveriesQuery(sellerID kernel.UUID) (GetSellerDeliveriesQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return GetSellerDeliveriesQuery{}, errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}

	return GetSellerDeliveriesQuery{
		sellerID: sellerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSellerDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerDeliveriesQueryIsNotConstructed)
}

func (q GetSellerDeliveriesQuery) SellerID() kernel.UUID { return q.sellerID }

// DeliveryProduct is the listing a pending delivery refers to.
type DeliveryProduct struct {
	ID          kernel.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
}

// GetSellerDeliveriesQueryResponse is one pending line. It carries no code
// and no digest.
type GetSellerDeliveriesQueryResponse struct {
	OrderID   kernel.UUID
	OrderedAt time.Time
	Status    order.LineStatus
	Product   DeliveryProduct
	Buyer     user.PublicProfile
}
