package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand asks to sell productIDs to buyerID as order orderID.
//
// Example:
//
//	cmd, err := NewCheckoutCommand(kernel.NewUUID(), buyerID, []kernel.UUID{p1, p2})
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	buyerID    kernel.UUID
	productIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCheckoutCommand validates identifiers and rejects empty or repeated product lists.
func NewCheckoutCommand(orderID, buyerID kernel.UUID, productIDs []kernel.UUID) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setProductIDs(productIDs),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) OrderID() kernel.UUID { return c.orderID }
func (c CheckoutCommand) BuyerID() kernel.UUID { return c.buyerID }

// ProductIDs returns a copy of the requested products in request order.
func (c CheckoutCommand) ProductIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.productIDs))
	copy(ids, c.productIDs)
	return ids
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CheckoutCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyerId", err)
	}
	c.buyerID = buyerID
	return nil
}

func (c *CheckoutCommand) setProductIDs(productIDs []kernel.UUID) error {
	if len(productIDs) == 0 {
		return errs.NewValueIsRequiredError("productIds")
	}

	seen := make(map[kernel.UUID]struct{}, len(productIDs))
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("productIds", err)
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("productIds", fmt.Errorf("product %s is listed more than once", id))
		}
		seen[id] = struct{}{}
	}

	c.productIDs = append([]kernel.UUID(nil), productIDs...)
	return nil
}
