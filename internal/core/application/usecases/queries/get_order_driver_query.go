package queries

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetOrderDriverQueryIsNotConstructed = errors.New(
	"GetOrderDriverQuery must be created via NewGetOrderDriverQuery constructor",
)

// GetOrderDriverQuery retrieves the driver currently attached to an order.
// The tracking loop merges this with its last-known-good value, so "no driver
// yet" and "no driver anymore" both come back as a nil Driver.
type GetOrderDriverQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderDriverQuery creates a query for one order's driver.
func NewGetOrderDriverQuery(orderID kernel.UUID) (GetOrderDriverQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDriverQuery{}, err
	}

	return GetOrderDriverQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderDriverQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDriverQueryIsNotConstructed)
}

// OrderID returns the identifier of the order being queried.
func (q GetOrderDriverQuery) OrderID() kernel.UUID {
	return q.orderID
}

// DriverSummary is the read-side projection of a driver reference.
type DriverSummary struct {
	ID   kernel.UUID
	Name string
}

// GetOrderDriverQueryResponse carries the driver attached to the order,
// nil when the order has none.
type GetOrderDriverQueryResponse struct {
	OrderID kernel.UUID
	Driver  *DriverSummary
}
