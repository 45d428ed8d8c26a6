package services

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrCheckoutDeskIsNotConstructed is returned by a zero-value CheckoutDesk.
	ErrCheckoutDeskIsNotConstructed = errors.New("CheckoutDesk must be created via NewCheckoutDesk constructor")

	// ErrBuyerIsSeller is returned when a buyer tries to check out their own listing.
	ErrBuyerIsSeller = errors.New("buyer cannot purchase their own product")
)

// CheckoutDesk sells a set of products to one buyer.
//
// Business rules:
//   - At least one product, each product at most once
//   - Every product must still be available
//   - Nobody buys their own listing
//   - Each line gets its own freshly generated code; only the digest is kept
//   - The buyer's cart is emptied
//
// Nothing is changed unless every product passes the checks.
//
// Example usage:
//
//	desk, _ := services.NewCheckoutDesk(kernel.NewRandomCodeGenerator())
//	o, err := desk.Checkout(kernel.NewUUID(), buyer, products, time.Now())
//	if errors.Is(err, product.ErrProductIsNotAvailable) {
//	    // somebody was faster
//	}
type CheckoutDesk struct {
	codes kernel.CodeGenerator
}

// NewCheckoutDesk creates a desk that mints delivery codes with codes.
func NewCheckoutDesk(codes kernel.CodeGenerator) (*CheckoutDesk, error) {
	if codes == nil {
		return nil, errs.NewValueIsRequiredError("codes")
	}
	return &CheckoutDesk{codes: codes}, nil
}

// Checkout builds order orderID for buyer. The raw codes generated here are
// dropped on purpose: the buyer receives a fresh code when listing active orders.
func (d *CheckoutDesk) Checkout(
	orderID kernel.UUID,
	buyer *user.User,
	products []*product.Product,
	placedAt time.Time,
) (*order.Order, error) {
	if d == nil || d.codes == nil {
		return nil, ErrCheckoutDeskIsNotConstructed
	}
	if err := buyer.Validate(); err != nil {
		return nil, err
	}
	if err := d.validateProducts(buyer, products); err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(products))
	for _, p := range products {
		code, err := d.codes.Generate()
		if err != nil {
			return nil, err
		}

		line, err := order.NewLine(p.ID(), code.Digest())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	o, err := order.NewOrder(orderID, buyer.ID(), placedAt, lines)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		if err := p.Sell(); err != nil {
			return nil, err
		}
	}
	buyer.ClearCart()

	return o, nil
}

func (d *CheckoutDesk) validateProducts(buyer *user.User, products []*product.Product) error {
	if len(products) == 0 {
		return errs.NewValueIsRequiredError("productIds")
	}

	seen := make(map[kernel.UUID]struct{}, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.ID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"productIds",
				fmt.Errorf("product %s is listed more than once", p.ID()),
			)
		}
		seen[p.ID()] = struct{}{}

		if p.IsSoldBy(buyer.ID()) {
			return errs.NewValueIsInvalidErrorWithCause(
				"productIds",
				fmt.Errorf("%w: %s", ErrBuyerIsSeller, p.ID()),
			)
		}
		if !p.IsAvailable() {
			return fmt.Errorf("%w: %s", product.ErrProductIsNotAvailable, p.ID())
		}
	}

	return nil
}
