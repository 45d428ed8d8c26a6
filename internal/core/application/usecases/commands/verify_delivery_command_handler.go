package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
)

// ErrOrderNotFound is returned when no order contains the product.
var ErrOrderNotFound = errors.New("order not found")

// VerifyDeliveryCommandHandler completes the delivery of one product when the
// presented code matches. A wrong code leaves everything untouched and there
// is no lockout after repeated failures.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidDeliveryCode):
//	    // wrong code, nothing changed
//	case errors.Is(err, order.ErrLineAlreadyCompleted):
//	    // handed over before
//	case errors.Is(err, ErrOrderNotFound):
//	    // product was never sold
//	}
type VerifyDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewVerifyDeliveryCommandHandler(uowFactory OrderUoWFactory) VerifyDeliveryCommandHandler {
	return VerifyDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle verifies against the most recent order that contains the product.
func (h VerifyDeliveryCommandHandler) Handle(ctx context.Context, cmd VerifyDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetLatestByProduct(ctx, cmd.ProductID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	}
	if err != nil {
		return err
	}

	if err = o.VerifyDelivery(cmd.ProductID(), cmd.Code(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
