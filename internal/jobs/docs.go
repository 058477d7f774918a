// Package jobs provides scheduled background tasks for the tracking system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the shipment tracking service.
//
// # Available Jobs
//
// 1. DueDateSweepJob - Runs every minute to re-derive status, risk and
// deadline alerts for every active shipment
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(uowFactory, refreshHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the cron expression "0 * * * * *", once per minute. A
// shipment whose step crosses its due date between edits is picked up by
// the next sweep, so overdue alerts lag a deadline by at most a minute.
//
// # Error Handling
//
// Each shipment refresh runs in its own transaction; a failing shipment is
// logged and skipped so the rest of the sweep proceeds.
package jobs
