package product

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// TradingStatus is the sale state of a product.
//
//	Available ──> Sold
//
// There is no way back: a sold product never reverts automatically.
type TradingStatus int

const (
	// UnknownTradingStatus catches uninitialized values.
	UnknownTradingStatus TradingStatus = iota

	// Available products can be checked out.
	Available

	// Sold products belong to an order.
	Sold
)

func getTradingStatusStrings() map[TradingStatus]string {
	return map[TradingStatus]string{
		UnknownTradingStatus: "unknown",
		Available:            "available",
		Sold:                 "sold",
	}
}

// Validate rejects UnknownTradingStatus and out-of-range values.
func (s TradingStatus) Validate() error {
	if s != Available && s != Sold {
		return errs.NewValueIsInvalidErrorWithCause("trading status is invalid", fmt.Errorf("%d is not a valid trading status", s))
	}
	return nil
}

// String returns the lowercase name used on the wire.
func (s TradingStatus) String() string {
	if str, ok := getTradingStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Sell transitions Available to Sold. Any other source status fails with
// ErrProductIsNotAvailable.
func (s TradingStatus) Sell() (TradingStatus, error) {
	if s != Available {
		return UnknownTradingStatus, fmt.Errorf("%w: status is %s", ErrProductIsNotAvailable, s)
	}
	return Sold, nil
}
