package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRelayOrderEventsCommand(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "smallest batch", size: 1},
		{name: "largest batch", size: commands.MaxRelayBatchSize},
		{name: "zero", size: 0, wantErr: true},
		{name: "negative", size: -5, wantErr: true},
		{name: "too large", size: commands.MaxRelayBatchSize + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewRelayOrderEventsCommand(tt.size)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.size, cmd.BatchSize())
		})
	}
}

func newRelayFixture() (*MockUoW, *MockOutbox, *MockPublisher, commands.RelayOrderEventsCommandHandler) {
	uow := new(MockUoW)
	outbox := new(MockOutbox)
	publisher := new(MockPublisher)
	uow.On("OrderEventOutbox").Return(outbox).Maybe()

	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	return uow, outbox, publisher, commands.NewRelayOrderEventsCommandHandler(factory, publisher)
}

func pendingEvents(n int) []order.Event {
	events := make([]order.Event, 0, n)
	for range n {
		events = append(events, order.Event{
			ID:         kernel.NewUUID(),
			Type:       order.OrderPlaced,
			OrderID:    kernel.NewUUID(),
			BuyerID:    kernel.NewUUID(),
			ProductIDs: []kernel.UUID{kernel.NewUUID()},
			OccurredAt: time.Now().UTC(),
		})
	}
	return events
}

func TestRelayOrderEventsCommandHandler_Handle_Publishes(t *testing.T) {
	ctx := t.Context()
	uow, outbox, publisher, handler := newRelayFixture()
	events := pendingEvents(2)
	ids := []kernel.UUID{events[0].ID, events[1].ID}

	cmd, err := commands.NewRelayOrderEventsCommand(10)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		outbox.On("GetUnpublished", ctx, 10).Return(events, nil).Once(),
		publisher.On("Publish", ctx, events).Return(nil).Once(),
		outbox.On("MarkPublished", ctx, ids, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	n, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	uow.AssertExpectations(t)
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRelayOrderEventsCommandHandler_Handle_NothingPending(t *testing.T) {
	ctx := t.Context()
	uow, outbox, publisher, handler := newRelayFixture()

	cmd, err := commands.NewRelayOrderEventsCommand(10)
	require.NoError(t, err)

	uow.On("Begin", ctx).Return(nil).Once()
	outbox.On("GetUnpublished", ctx, 10).Return([]order.Event{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	n, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, n)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRelayOrderEventsCommandHandler_Handle_PublishFailureIsRecorded(t *testing.T) {
	ctx := t.Context()
	uow, outbox, publisher, handler := newRelayFixture()
	events := pendingEvents(1)
	brokerDown := errors.New("broker unavailable")

	cmd, err := commands.NewRelayOrderEventsCommand(5)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		outbox.On("GetUnpublished", ctx, 5).Return(events, nil).Once(),
		publisher.On("Publish", ctx, events).Return(brokerDown).Once(),
		outbox.On("MarkFailed", ctx, []kernel.UUID{events[0].ID}, brokerDown).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	n, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, brokerDown)
	assert.Zero(t, n)
	outbox.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestRelayOrderEventsCommandHandler_Handle_MarkPublishedFailure(t *testing.T) {
	ctx := t.Context()
	uow, outbox, publisher, handler := newRelayFixture()
	events := pendingEvents(1)
	dbErr := errors.New("statement timeout")

	cmd, err := commands.NewRelayOrderEventsCommand(5)
	require.NoError(t, err)

	uow.On("Begin", ctx).Return(nil).Once()
	outbox.On("GetUnpublished", ctx, 5).Return(events, nil).Once()
	publisher.On("Publish", ctx, events).Return(nil).Once()
	outbox.On("MarkPublished", ctx, mock.Anything, mock.Anything).Return(dbErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, dbErr)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
