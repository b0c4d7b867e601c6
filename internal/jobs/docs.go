// Package jobs runs the service's scheduled background work on
// github.com/robfig/cron/v3 with a seconds field.
//
// NotificationRetryJob drains the passcode notification outbox. Each run
// locks one batch with SKIP LOCKED, so running several instances of the
// service never sends a message twice. Entries whose passcode has expired
// are abandoned without sending.
//
//	jobManager := jobs.NewJobManager(retryHandler, cfg.RetrySchedule, cfg.RetryBatchSize, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer jobManager.StopAll()
//
// A failed run is logged and retried on the next tick.
package jobs
