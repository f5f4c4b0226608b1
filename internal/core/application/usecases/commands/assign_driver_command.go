package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand records an external dispatch decision: attach the given
// driver to the order. Which driver to pick is decided outside the core; the
// command only carries the result.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actor      Actor
	driverID   kernel.UUID
	driverName string

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command to assign a driver to an order.
func NewAssignDriverCommand(
	orderID kernel.UUID,
	actor Actor,
	driverID kernel.UUID,
	driverName string,
) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setDriver(driverID, driverName),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party issuing the assignment.
func (c AssignDriverCommand) Actor() Actor {
	return c.actor
}

// DriverID returns the driver's identifier.
func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// DriverName returns the driver's display name.
func (c AssignDriverCommand) DriverName() string {
	return c.driverName
}

func (c *AssignDriverCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AssignDriverCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *AssignDriverCommand) setDriver(driverID kernel.UUID, driverName string) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver id", err)
	}
	if driverName == "" {
		return errs.NewValueIsRequiredError("driver name")
	}
	c.driverID = driverID
	c.driverName = driverName
	return nil
}
