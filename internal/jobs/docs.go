// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron based (github.com/robfig/cron/v3, seconds enabled).
//
// # Available Jobs
//
// OrderEventsRelayJob publishes the order events that checkout and delivery
// verification stored in the outbox. It runs on OUTBOX_RELAY_SCHEDULE
// (every five seconds by default) and never overlaps with itself.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, jobs.RelaySettings{
//		Schedule:  "*/5 * * * * *",
//		BatchSize: 100,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed relay is logged and left in the outbox with its attempt count
// increased; the next run picks it up again.
package jobs
