package queries

import (
	"errors"
	"time"

	"waterdelivery/internal/pkg/guard"
)

var ErrGetOverdueOrderCountQueryIsNotConstructed = errors.New(
	"GetOverdueOrderCountQuery must be created via NewGetOverdueOrderCountQuery constructor",
)

// GetOverdueOrderCountQuery counts non-terminal orders whose estimated
// delivery time has passed. Feeds the overdue-orders job.
type GetOverdueOrderCountQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueOrderCountQuery creates a query counting orders overdue as of
// the given instant.
func NewGetOverdueOrderCountQuery(asOf time.Time) (GetOverdueOrderCountQuery, error) {
	return GetOverdueOrderCountQuery{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueOrderCountQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOrderCountQueryIsNotConstructed)
}

// AsOf returns the instant orders are measured against.
func (q GetOverdueOrderCountQuery) AsOf() time.Time {
	return q.asOf
}
