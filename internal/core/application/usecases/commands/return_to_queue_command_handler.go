package commands

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
)

// ReturnToQueueCommandHandler moves assigned or in-transit orders back to
// Pending, clearing the driver reference. The revert is unconditional once
// the source status matches; no driver acknowledgment is modeled.
type ReturnToQueueCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewReturnToQueueCommandHandler creates a handler for return-to-queue.
func NewReturnToQueueCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ReturnToQueueCommandHandler {
	return ReturnToQueueCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the order to the dispatch queue. Conflicts from Pending
// (a no-op there would mask a stale caller) and from terminal states.
// Returns the updated order.
func (h ReturnToQueueCommandHandler) Handle(ctx context.Context, cmd ReturnToQueueCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = cmd.Actor().authorize(aggregate, RoleOperator); err != nil {
		return nil, err
	}

	fromStatus := aggregate.Status()
	if err = aggregate.ReturnToQueue(); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		_ = h.publisher.PublishOrderChanged(ctx, ports.OrderChangedEvent{
			OrderID:    aggregate.ID(),
			FirmID:     aggregate.FirmID(),
			FromStatus: fromStatus,
			ToStatus:   aggregate.Status(),
			OccurredAt: time.Now().UTC(),
		})
	}

	return aggregate, nil
}
