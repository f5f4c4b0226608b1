package jobs

import (
	"fmt"
	"log/slog"

	"waterdelivery/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderStatsJob    *OrderStatsJob
	overdueOrdersJob *OverdueOrdersJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	countsHandler queries.GetOrderCountsQueryHandler,
	overdueHandler queries.GetOverdueOrderCountQueryHandler,
	metrics *OrderMetrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderStatsJob:    NewOrderStatsJob(countsHandler, metrics, logger),
		overdueOrdersJob: NewOverdueOrdersJob(overdueHandler, metrics, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderStatsJob.Start(); err != nil {
		return fmt.Errorf("failed to start order stats job: %w", err)
	}

	if err := jm.overdueOrdersJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderStatsJob.Stop()
		return fmt.Errorf("failed to start overdue orders job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueOrdersJob.Stop()
	jm.orderStatsJob.Stop()
}
