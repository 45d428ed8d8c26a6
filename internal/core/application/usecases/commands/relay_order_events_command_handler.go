package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// RelayOrderEventsCommandHandler publishes pending outbox rows. Rows stay
// locked while the broker is called, so parallel relays never send the same
// event twice. A failed publish is recorded on the rows and retried on the
// next run.
type RelayOrderEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.OrderEventPublisher
}

func NewRelayOrderEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.OrderEventPublisher,
) RelayOrderEventsCommandHandler {
	return RelayOrderEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns how many events were published.
func (h RelayOrderEventsCommandHandler) Handle(ctx context.Context, cmd RelayOrderEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OrderEventOutbox()

	events, err := outbox.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	ids := make([]kernel.UUID, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.ID)
	}

	if publishErr := h.publisher.Publish(ctx, events); publishErr != nil {
		if err = outbox.MarkFailed(ctx, ids, publishErr); err != nil {
			return 0, errors.Join(publishErr, err)
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, errors.Join(publishErr, err)
		}
		return 0, publishErr
	}

	if err = outbox.MarkPublished(ctx, ids, time.Now().UTC()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(events), nil
}
