package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrVerifyDeliveryCommandIsNotConstructed = errors.New(
	"VerifyDeliveryCommand must be created via NewVerifyDeliveryCommand constructor",
)

// VerifyDeliveryCommand carries the code a seller was shown for productID.
// The code is kept exactly as presented; a malformed code simply fails to match.
type VerifyDeliveryCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	code      string

	guard guard.ConstructorGuard
}

func NewVerifyDeliveryCommand(productID kernel.UUID, code string) (VerifyDeliveryCommand, error) {
	cmd := VerifyDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setCode(code),
	); err != nil {
		return VerifyDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c VerifyDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCommandIsNotConstructed)
}

func (c VerifyDeliveryCommand) ProductID() kernel.UUID { return c.productID }
func (c VerifyDeliveryCommand) Code() string           { return c.code }

func (c *VerifyDeliveryCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	c.productID = productID
	return nil
}

func (c *VerifyDeliveryCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("otp")
	}
	c.code = code
	return nil
}
