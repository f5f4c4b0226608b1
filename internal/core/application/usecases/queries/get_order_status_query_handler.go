package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler reads one order's status projection from the
// database. Reads bypass the unit of work: a poll observing a state one write
// behind is acceptable, the next poll catches up.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for order status queries.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError when no order with
// the given ID exists.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	var (
		status              int
		estimatedDeliveryAt time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			estimated_delivery_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&status, &estimatedDeliveryAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderStatusQueryResponse{},
				errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderStatusQueryResponse{}, err
	}

	orderStatus := order.Status(status)
	stage, err := order.StageForStatus(orderStatus)
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	return GetOrderStatusQueryResponse{
		OrderID:             query.OrderID(),
		Status:              orderStatus,
		Stage:               stage,
		EstimatedDeliveryAt: estimatedDeliveryAt,
	}, nil
}
