package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type relayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOrderEventsCommand) (int, error)
}

// OrderEventsRelayJob drains the order events outbox into Kafka on a schedule.
type OrderEventsRelayJob struct {
	handler   relayHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOrderEventsRelayJob creates a relay job. schedule is a six field cron
// expression (seconds first).
func NewOrderEventsRelayJob(handler relayHandler, schedule string, batchSize int, logger *slog.Logger) *OrderEventsRelayJob {
	return &OrderEventsRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "order_events_relay_job"),
	}
}

// Start registers the relay with the scheduler and starts it.
func (j *OrderEventsRelayJob) Start() error {
	cmd, err := commands.NewRelayOrderEventsCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background(), cmd)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order events relay job started",
		"schedule", j.schedule,
		"batch_size", j.batchSize,
	)
	return nil
}

// Run relays one batch. Failures are logged; the rows stay pending and the
// next tick retries them.
func (j *OrderEventsRelayJob) Run(ctx context.Context, cmd commands.RelayOrderEventsCommand) {
	published, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order events relay failed", "error", err)
		return
	}
	if published > 0 {
		j.logger.DebugContext(ctx, "Order events relayed", "count", published)
	}
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *OrderEventsRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order events relay job stopped")
}
