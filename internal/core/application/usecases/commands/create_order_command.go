package commands

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a checkout request: a frozen cart snapshot
// from the cart collaborator plus the delivery address from the address
// collaborator. The item list must already be immutable when the command is
// built; the core never reads a live cart.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), firmID, clientID, "Aziz Karimov",
//	    "12 Amir Temur Avenue", geo, items, estimate)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	firmID              kernel.UUID
	clientID            kernel.UUID
	clientName          string
	address             string
	geo                 kernel.GeoPoint
	items               []order.Item
	estimatedDeliveryAt time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, the address, and that the item list is non-empty
// with constructor-built items.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	firmID kernel.UUID,
	clientID kernel.UUID,
	clientName string,
	address string,
	geo kernel.GeoPoint,
	items []order.Item,
	estimatedDeliveryAt time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		clientName:          clientName,
		estimatedDeliveryAt: estimatedDeliveryAt,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFirmID(firmID),
		cmd.setClientID(clientID),
		cmd.setAddress(address, geo),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FirmID returns the fulfilling firm's identifier.
func (c CreateOrderCommand) FirmID() kernel.UUID {
	return c.firmID
}

// ClientID returns the ordering customer's identifier.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// ClientName returns the ordering customer's display name.
func (c CreateOrderCommand) ClientName() string {
	return c.clientName
}

// Address returns the opaque delivery address string.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Geo returns the delivery coordinates.
func (c CreateOrderCommand) Geo() kernel.GeoPoint {
	return c.geo
}

// Items returns the frozen cart lines.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// EstimatedDeliveryAt returns the promised delivery time.
func (c CreateOrderCommand) EstimatedDeliveryAt() time.Time {
	return c.estimatedDeliveryAt
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setFirmID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("firm id", err)
	}
	c.firmID = id
	return nil
}

func (c *CreateOrderCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	c.clientID = id
	return nil
}

func (c *CreateOrderCommand) setAddress(address string, geo kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if err := geo.Validate(); err != nil {
		return err
	}
	c.address = address
	c.geo = geo
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}
