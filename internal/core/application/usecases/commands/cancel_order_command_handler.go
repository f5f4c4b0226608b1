package commands

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
)

// CancelOrderCommandHandler cancels orders on behalf of the firm operator or
// the ordering customer.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle cancels the order if it is not already terminal, storing the reason.
// Returns the updated order.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if err = cmd.Actor().authorize(aggregate, RoleOperator, RoleCustomer); err != nil {
		return nil, err
	}

	fromStatus := aggregate.Status()
	if err = aggregate.Cancel(cmd.Reason()); err != nil {
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
