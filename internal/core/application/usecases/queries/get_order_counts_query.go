package queries

import (
	"errors"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetOrderCountsQueryIsNotConstructed = errors.New(
	"GetOrderCountsQuery must be created via NewGetOrderCountsQuery constructor",
)

// GetOrderCountsQuery counts orders grouped by status across all firms.
// Feeds the periodic stats job.
type GetOrderCountsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderCountsQuery creates a parameterless query for status counts.
func NewGetOrderCountsQuery() GetOrderCountsQuery {
	return GetOrderCountsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderCountsQueryIsNotConstructed)
}

// GetOrderCountsQueryResponse maps each status to the number of orders in it.
// Statuses with no orders are present with a zero count.
type GetOrderCountsQueryResponse struct {
	Counts map[order.Status]int64
}
