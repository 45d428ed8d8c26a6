package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrIssueActiveOrderCodesCommandIsNotConstructed = errors.New(
	"IssueActiveOrderCodesCommand must be created via NewIssueActiveOrderCodesCommand constructor",
)

// IssueActiveOrderCodesCommand lists the buyer's pending deliveries. It is a
// command, not a query: every call replaces the delivery code of each pending
// line, so codes handed out earlier stop working.
type IssueActiveOrderCodesCommand struct {
	buyerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewIssueActiveOrderCodesCommand(buyerID kernel.UUID) (IssueActiveOrderCodesCommand, error) {
	if err := buyerID.Validate(); err != nil {
		return IssueActiveOrderCodesCommand{}, errs.NewValueIsRequiredErrorWithCause("buyerId", err)
	}

	return IssueActiveOrderCodesCommand{
		buyerID: buyerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c IssueActiveOrderCodesCommand) Validate() error {
	return c.guard.Validate(ErrIssueActiveOrderCodesCommandIsNotConstructed)
}

func (c IssueActiveOrderCodesCommand) BuyerID() kernel.UUID { return c.buyerID }
