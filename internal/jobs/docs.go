// Package jobs provides scheduled background tasks for the water delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to keep operational metrics current for the dispatch console.
//
// # Available Jobs
//
// 1. OrderStatsJob - Runs every 15 seconds to refresh the per-stage order count gauges
// 2. OverdueOrdersJob - Runs every minute to count orders past their estimated delivery time
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	metrics := jobs.NewOrderMetrics(prometheus.DefaultRegisterer)
//	jobManager := jobs.NewJobManager(countsHandler, overdueHandler, metrics, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Both jobs log query failures and leave the last published gauge value in place
// - An overdue count above zero is additionally logged as a warning
// - Failed job starts will stop any already running jobs
package jobs
