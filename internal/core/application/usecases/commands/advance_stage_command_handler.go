package commands

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
)

// AdvanceStageCommandHandler applies forward lifecycle steps reported by the
// assigned driver or the firm operator.
type AdvanceStageCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewAdvanceStageCommandHandler creates a handler for forward stage moves.
func NewAdvanceStageCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) AdvanceStageCommandHandler {
	return AdvanceStageCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle advances the order one step. Skip-ahead attempts and terminal
// sources conflict; Delivered freezes the record. Returns the updated order.
func (h AdvanceStageCommandHandler) Handle(ctx context.Context, cmd AdvanceStageCommand) (*order.Order, error) {
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

	if err = cmd.Actor().authorize(aggregate, RoleDriver, RoleOperator); err != nil {
		return nil, err
	}

	fromStatus := aggregate.Status()
	if err = aggregate.Advance(cmd.Next()); err != nil {
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
