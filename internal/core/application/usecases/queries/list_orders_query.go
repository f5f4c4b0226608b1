package queries

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves a firm's orders, newest first, optionally
// filtered by status. This backs the operator console's order list.
//
// Example:
//
//	query, err := NewListOrdersQuery(firmID, order.Pending)
//	if err != nil {
//	    return err
//	}
//	handler := NewListOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("#%d %s %s\n", o.OrderNumber, o.ClientName, o.Stage)
//	}
type ListOrdersQuery struct {
	firmID kernel.UUID
	status order.Status // Unknown means no filter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query for a firm's order list. Pass
// order.Unknown as status to list across all statuses.
func NewListOrdersQuery(firmID kernel.UUID, status order.Status) (ListOrdersQuery, error) {
	if err := firmID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		firmID: firmID,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// FirmID returns the firm whose orders are listed.
func (q ListOrdersQuery) FirmID() kernel.UUID {
	return q.firmID
}

// Status returns the status filter, order.Unknown when unfiltered.
func (q ListOrdersQuery) Status() order.Status {
	return q.status
}

// ListOrdersQueryResponse is one row of the operator's order list.
type ListOrdersQueryResponse struct {
	ID                  kernel.UUID
	OrderNumber         int64
	ClientID            kernel.UUID
	ClientName          string
	Address             string
	Total               decimal.Decimal
	Status              order.Status
	Stage               order.Stage
	Driver              *DriverSummary
	CreatedAt           time.Time
	EstimatedDeliveryAt time.Time
}
