package jobs

import (
	"context"
	"log/slog"

	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// OrderStatsJob keeps the per-stage order gauges current.
// Runs every fifteen seconds; the operator dashboards read them via /metrics.
type OrderStatsJob struct {
	handler queries.GetOrderCountsQueryHandler
	metrics *OrderMetrics
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderStatsJob creates a job that refreshes the order count gauges.
func NewOrderStatsJob(
	handler queries.GetOrderCountsQueryHandler,
	metrics *OrderMetrics,
	logger *slog.Logger,
) *OrderStatsJob {
	return &OrderStatsJob{
		handler: handler,
		metrics: metrics,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_stats_job"),
	}
}

// Start begins the order stats job to run every fifteen seconds.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		ctx := context.Background()

		counts, err := j.handler.Handle(ctx, queries.NewGetOrderCountsQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Order stats job failed", "error", err)
			return
		}

		for status, count := range counts.Counts {
			stage, stageErr := order.StageForStatus(status)
			if stageErr != nil {
				continue
			}
			j.metrics.OrdersByStage.WithLabelValues(string(stage)).Set(float64(count))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started (running every 15 seconds)")
	return nil
}

// Stop stops the order stats job.
func (j *OrderStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
