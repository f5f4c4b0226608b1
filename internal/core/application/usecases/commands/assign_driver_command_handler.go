package commands

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
)

// AssignDriverCommandHandler applies a dispatch decision to an order.
// The stored status is re-checked under a row lock at mutation time, so a
// stale caller gets a conflict, never a silent overwrite of a later state.
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle assigns the driver to the order: Pending -> Assigned, or
// Assigned -> Assigned for reassignment (the prior driver is overwritten).
// Returns the updated order.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	driver, err := order.NewDriverRef(cmd.DriverID(), cmd.DriverName())
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

	repo := uow.OrderRepository()
	aggregate, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = cmd.Actor().authorize(aggregate, RoleOperator); err != nil {
		return nil, err
	}

	fromStatus := aggregate.Status()
	if err = aggregate.AssignDriver(driver); err != nil {
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
