package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRelayOrderEventsCommandIsNotConstructed = errors.New(
	"RelayOrderEventsCommand must be created via NewRelayOrderEventsCommand constructor",
)

// MaxRelayBatchSize caps how many events one relay run locks.
const MaxRelayBatchSize = 1000

// RelayOrderEventsCommand moves up to batchSize stored order events to the broker.
type RelayOrderEventsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOrderEventsCommand(batchSize int) (RelayOrderEventsCommand, error) {
	if batchSize < 1 || batchSize > MaxRelayBatchSize {
		return RelayOrderEventsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, MaxRelayBatchSize)
	}

	return RelayOrderEventsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RelayOrderEventsCommand) Validate() error {
	return c.guard.Validate(ErrRelayOrderEventsCommandIsNotConstructed)
}

func (c RelayOrderEventsCommand) BatchSize() int { return c.batchSize }
