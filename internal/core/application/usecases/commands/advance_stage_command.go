package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/guard"
)

var ErrAdvanceStageCommandIsNotConstructed = errors.New(
	"AdvanceStageCommand must be created via NewAdvanceStageCommand constructor",
)

// AdvanceStageCommand moves an order exactly one step forward along the
// delivery path (Assigned -> OnTheWay -> Delivered). The requested target is
// explicit so that a stale caller asking for a stage that already passed is
// rejected instead of coalesced.
type AdvanceStageCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   Actor
	next    order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceStageCommand creates a command to advance an order to next.
func NewAdvanceStageCommand(orderID kernel.UUID, actor Actor, next order.Status) (AdvanceStageCommand, error) {
	cmd := AdvanceStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setNext(next),
	); err != nil {
		return AdvanceStageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStageCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStageCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AdvanceStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party requesting the advance.
func (c AdvanceStageCommand) Actor() Actor {
	return c.actor
}

// Next returns the requested target status.
func (c AdvanceStageCommand) Next() order.Status {
	return c.next
}

func (c *AdvanceStageCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AdvanceStageCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *AdvanceStageCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	c.next = next
	return nil
}
