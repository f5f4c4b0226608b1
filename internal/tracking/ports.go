package tracking

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
)

// DriverInfo is the driver detail shown on the tracking screen.
type DriverInfo struct {
	ID   kernel.UUID
	Name string
}

// Snapshot is one observation of an order's tracking state. Driver is nil
// when the store has no driver attached at observation time.
type Snapshot struct {
	Status              order.Status
	Driver              *DriverInfo
	EstimatedDeliveryAt time.Time
}

// StatusFetcher reads the current tracking state of an order. Implementations
// sit over the read queries or the HTTP API.
type StatusFetcher interface {
	Fetch(ctx context.Context, orderID kernel.UUID) (Snapshot, error)
}

// StageChange is emitted exactly once per observed stage entry.
type StageChange struct {
	OrderID             kernel.UUID
	Stage               order.Stage
	Cue                 string
	Driver              *DriverInfo
	EstimatedDeliveryAt time.Time
	ObservedAt          time.Time
}

// NotificationSink receives stage-change events. Sink errors are logged by
// the watcher and never stop the loop.
type NotificationSink interface {
	Notify(ctx context.Context, change StageChange) error
}
