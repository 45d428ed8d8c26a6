package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderEventsRelayJob *OrderEventsRelayJob
}

// RelaySettings configures the order events relay.
type RelaySettings struct {
	Schedule  string
	BatchSize int
}

func NewJobManager(
	relayOrderEventsHandler relayHandler,
	relay RelaySettings,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderEventsRelayJob: NewOrderEventsRelayJob(relayOrderEventsHandler, relay.Schedule, relay.BatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderEventsRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start order events relay job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderEventsRelayJob.Stop()
}
