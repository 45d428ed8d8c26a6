package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/user"
)

// ActiveOrderLine is one pending delivery of the buyer with the code that is
// valid right now. Product and Seller are nil when the listing or its owner
// no longer exists.
type ActiveOrderLine struct {
	OrderID   kernel.UUID
	OrderedAt time.Time
	ProductID kernel.UUID
	Status    order.LineStatus
	Code      kernel.DeliveryCode
	Product   *product.Product
	Seller    *user.PublicProfile
}

// IssueActiveOrderCodesCommandHandler rotates and returns the codes of every
// pending line owned by the buyer. Calling it twice yields two different codes
// per line and only the second one verifies.
type IssueActiveOrderCodesCommandHandler struct {
	uowFactory UoWFactory
	codes      kernel.CodeGenerator
}

func NewIssueActiveOrderCodesCommandHandler(
	uowFactory UoWFactory,
	codes kernel.CodeGenerator,
) IssueActiveOrderCodesCommandHandler {
	return IssueActiveOrderCodesCommandHandler{
		uowFactory: uowFactory,
		codes:      codes,
	}
}

// Handle returns the pending lines oldest order first, in checkout order within
// an order. A buyer without pending deliveries gets an empty slice.
func (h IssueActiveOrderCodesCommandHandler) Handle(
	ctx context.Context,
	cmd IssueActiveOrderCodesCommand,
) ([]ActiveOrderLine, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orders, err := orderRepo.GetActiveByBuyer(ctx, cmd.BuyerID())
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []ActiveOrderLine{}, nil
	}

	products, sellers, err := h.loadCounterparts(ctx, uow, orders)
	if err != nil {
		return nil, err
	}

	result := make([]ActiveOrderLine, 0)
	for _, o := range orders {
		for _, line := range o.PendingLines() {
			code, genErr := h.codes.Generate()
			if genErr != nil {
				return nil, genErr
			}

			if err = o.RotateCode(line.ProductID(), code.Digest()); err != nil {
				return nil, err
			}

			item := ActiveOrderLine{
				OrderID:   o.ID(),
				OrderedAt: o.CreatedAt(),
				ProductID: line.ProductID(),
				Status:    line.Status(),
				Code:      code,
			}
			if p, ok := products[line.ProductID()]; ok {
				item.Product = p
				if seller, found := sellers[p.Seller()]; found {
					profile := seller.PublicProfile()
					item.Seller = &profile
				}
			}
			result = append(result, item)
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

func (h IssueActiveOrderCodesCommandHandler) loadCounterparts(
	ctx context.Context,
	uow UoW,
	orders []*order.Order,
) (map[kernel.UUID]*product.Product, map[kernel.UUID]*user.User, error) {
	var productIDs []kernel.UUID
	for _, o := range orders {
		for _, line := range o.PendingLines() {
			productIDs = append(productIDs, line.ProductID())
		}
	}

	found, err := uow.ProductRepository().GetMany(ctx, productIDs)
	if err != nil {
		return nil, nil, err
	}

	products := make(map[kernel.UUID]*product.Product, len(found))
	sellerSet := make(map[kernel.UUID]struct{})
	var sellerIDs []kernel.UUID
	for _, p := range found {
		products[p.ID()] = p
		if _, seen := sellerSet[p.Seller()]; !seen {
			sellerSet[p.Seller()] = struct{}{}
			sellerIDs = append(sellerIDs, p.Seller())
		}
	}

	users, err := uow.UserRepository().GetMany(ctx, sellerIDs)
	if err != nil {
		return nil, nil, err
	}

	sellers := make(map[kernel.UUID]*user.User, len(users))
	for _, u := range users {
		sellers[u.ID()] = u
	}

	return products, sellers, nil
}
