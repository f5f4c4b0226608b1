package jobs

import (
	"context"
	"log/slog"
	"time"

	"waterdelivery/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// OverdueOrdersJob watches for orders still in flight past their estimated
// delivery time. Runs every minute and raises the overdue gauge so the firm
// can alert on it.
type OverdueOrdersJob struct {
	handler queries.GetOverdueOrderCountQueryHandler
	metrics *OrderMetrics
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueOrdersJob creates a job that tracks overdue deliveries.
func NewOverdueOrdersJob(
	handler queries.GetOverdueOrderCountQueryHandler,
	metrics *OrderMetrics,
	logger *slog.Logger,
) *OverdueOrdersJob {
	return &OverdueOrdersJob{
		handler: handler,
		metrics: metrics,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "overdue_orders_job"),
	}
}

// Start begins the overdue orders job to run every minute.
func (j *OverdueOrdersJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		query, err := queries.NewGetOverdueOrderCountQuery(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue orders job failed", "error", err)
			return
		}

		count, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue orders job failed", "error", err)
			return
		}

		j.metrics.OverdueOrders.Set(float64(count))
		if count > 0 {
			j.logger.WarnContext(ctx, "Orders past their estimated delivery time", "count", count)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue orders job started (running every minute)")
	return nil
}

// Stop stops the overdue orders job.
func (j *OverdueOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue orders job stopped")
}
