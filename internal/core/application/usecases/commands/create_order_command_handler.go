package commands

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
)

// CreateOrderCommandHandler handles order placement. The order starts in
// Pending with its item list and total frozen; the store issues the per-firm
// order number during the insert.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order placement command and returns the created order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.FirmID(),
		cmd.ClientID(),
		cmd.ClientName(),
		cmd.Address(),
		cmd.Geo(),
		cmd.Items(),
		cmd.EstimatedDeliveryAt(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		_ = h.publisher.PublishOrderChanged(ctx, ports.OrderChangedEvent{
			OrderID:    newOrder.ID(),
			FirmID:     newOrder.FirmID(),
			FromStatus: order.Unknown,
			ToStatus:   newOrder.Status(),
			OccurredAt: time.Now().UTC(),
		})
	}

	return newOrder, nil
}
