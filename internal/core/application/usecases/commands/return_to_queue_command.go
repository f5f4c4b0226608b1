package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrReturnToQueueCommandIsNotConstructed = errors.New(
	"ReturnToQueueCommand must be created via NewReturnToQueueCommand constructor",
)

// ReturnToQueueCommand reverts an assigned or in-transit order back to the
// dispatch queue, clearing its driver. Used by operators when a driver drops
// a run.
type ReturnToQueueCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   Actor

	guard guard.ConstructorGuard
}

// NewReturnToQueueCommand creates a command to return an order to the queue.
func NewReturnToQueueCommand(orderID kernel.UUID, actor Actor) (ReturnToQueueCommand, error) {
	cmd := ReturnToQueueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return ReturnToQueueCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnToQueueCommand) Validate() error {
	return c.guard.Validate(ErrReturnToQueueCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ReturnToQueueCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party requesting the return.
func (c ReturnToQueueCommand) Actor() Actor {
	return c.actor
}

func (c *ReturnToQueueCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ReturnToQueueCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
