package jobs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrderMetrics holds the gauges the scheduled jobs keep up to date.
// Registered once at startup; jobs only write values.
type OrderMetrics struct {
	OrdersByStage *prometheus.GaugeVec
	OverdueOrders prometheus.Gauge
}

// NewOrderMetrics registers the order gauges with the given registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	factory := promauto.With(reg)

	return &OrderMetrics{
		OrdersByStage: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "waterdelivery_orders_total",
			Help: "Current number of orders per lifecycle stage.",
		}, []string{"stage"}),
		OverdueOrders: factory.NewGauge(prometheus.GaugeOpts{
			Name: "waterdelivery_orders_overdue",
			Help: "Orders still in flight past their estimated delivery time.",
		}),
	}
}
