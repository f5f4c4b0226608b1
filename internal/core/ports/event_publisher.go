package ports

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
)

// OrderChangedEvent describes one committed lifecycle transition. Events are
// backend plumbing for downstream consumers (audit, analytics); the customer
// client stays on its polling loop and never receives these directly.
type OrderChangedEvent struct {
	OrderID    kernel.UUID
	FirmID     kernel.UUID
	FromStatus order.Status
	ToStatus   order.Status
	OccurredAt time.Time
}

// EventPublisher publishes order-changed events after a successful commit.
// Publish failures must not fail the mutation: the state change has already
// been committed, so implementations log and move on.
type EventPublisher interface {
	PublishOrderChanged(ctx context.Context, event OrderChangedEvent) error
}
