package queries

import (
	"context"

	"waterdelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOverdueOrderCountQueryHandler counts orders still in flight past their
// estimated delivery time.
type GetOverdueOrderCountQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueOrderCountQueryHandler creates a handler for overdue counts.
func NewGetOverdueOrderCountQueryHandler(db *gorm.DB) GetOverdueOrderCountQueryHandler {
	return GetOverdueOrderCountQueryHandler{db: db}
}

// Handle executes the query. Delivered and Cancelled orders are never
// overdue.
func (h GetOverdueOrderCountQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueOrderCountQuery,
) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	row := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE status NOT IN (?, ?)
		  AND estimated_delivery_at < ?
	`, int(order.Delivered), int(order.Cancelled), query.AsOf()).Row()

	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
