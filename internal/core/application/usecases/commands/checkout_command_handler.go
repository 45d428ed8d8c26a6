package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// ErrCheckoutFailed wraps every checkout failure. The underlying cause stays
// reachable through errors.Is.
var ErrCheckoutFailed = errors.New("checkout failed")

// CheckoutCommandHandler sells the requested products in one transaction:
// product status flips, the new order with its events, and the emptied cart
// are committed together or not at all.
//
// Example:
//
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // buyer or product does not exist
//	case errors.Is(err, product.ErrProductIsNotAvailable):
//	    // somebody bought it first
//	}
type CheckoutCommandHandler struct {
	uowFactory UoWFactory
	desk       *services.CheckoutDesk
}

func NewCheckoutCommandHandler(uowFactory UoWFactory, desk *services.CheckoutDesk) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		desk:       desk,
	}
}

// Handle returns the created order. Its lines carry digests only.
func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.checkout(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}
	return o, nil
}

func (h CheckoutCommandHandler) checkout(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	productRepo := uow.ProductRepository()
	orderRepo := uow.OrderRepository()

	buyer, err := userRepo.Get(ctx, cmd.BuyerID())
	if err != nil {
		return nil, err
	}

	products, err := h.loadProducts(ctx, productRepo.GetMany, cmd.ProductIDs())
	if err != nil {
		return nil, err
	}

	o, err := h.desk.Checkout(cmd.OrderID(), buyer, products, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		if err = productRepo.UpdateStatusIfAvailable(ctx, p); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = userRepo.UpdateCart(ctx, buyer); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// loadProducts fetches ids in one query and returns them in request order.
// The first missing id is reported as not found.
func (h CheckoutCommandHandler) loadProducts(
	ctx context.Context,
	getMany func(context.Context, []kernel.UUID) ([]*product.Product, error),
	ids []kernel.UUID,
) ([]*product.Product, error) {
	found, err := getMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*product.Product, len(found))
	for _, p := range found {
		byID[p.ID()] = p
	}

	products := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("productId", id.String())
		}
		products = append(products, p)
	}

	return products, nil
}
