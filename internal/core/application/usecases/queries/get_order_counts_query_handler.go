package queries

import (
	"context"

	"waterdelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderCountsQueryHandler counts orders per status.
type GetOrderCountsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderCountsQueryHandler creates a handler for status count queries.
func NewGetOrderCountsQueryHandler(db *gorm.DB) GetOrderCountsQueryHandler {
	return GetOrderCountsQueryHandler{db: db}
}

// Handle executes the query. Every valid status appears in the result, zero
// when no orders are in it.
func (h GetOrderCountsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderCountsQuery,
) (GetOrderCountsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderCountsQueryResponse{}, err
	}

	counts := map[order.Status]int64{
		order.Pending:   0,
		order.Assigned:  0,
		order.OnTheWay:  0,
		order.Delivered: 0,
		order.Cancelled: 0,
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetOrderCountsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status int
			count  int64
		)
		if err = rows.Scan(&status, &count); err != nil {
			return GetOrderCountsQueryResponse{}, err
		}
		counts[order.Status(status)] = count
	}

	if err = rows.Err(); err != nil {
		return GetOrderCountsQueryResponse{}, err
	}

	return GetOrderCountsQueryResponse{Counts: counts}, nil
}
