package queries

import (
	"context"
	"database/sql"
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderDriverQueryHandler reads an order's driver projection from the
// database.
type GetOrderDriverQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderDriverQueryHandler creates a handler for order driver queries.
func NewGetOrderDriverQueryHandler(db *gorm.DB) GetOrderDriverQueryHandler {
	return GetOrderDriverQueryHandler{db: db}
}

// Handle executes the query. A missing order is ObjectNotFoundError; an order
// without a driver is a successful response with a nil Driver.
func (h GetOrderDriverQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDriverQuery,
) (GetOrderDriverQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDriverQueryResponse{}, err
	}

	var (
		driverID   *uuid.UUID
		driverName sql.NullString
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			driver_id,
			driver_name
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&driverID, &driverName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderDriverQueryResponse{},
				errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderDriverQueryResponse{}, err
	}

	resp := GetOrderDriverQueryResponse{OrderID: query.OrderID()}
	if driverID == nil {
		return resp, nil
	}

	id, err := kernel.UUIDFromBytes((*driverID)[:])
	if err != nil {
		return GetOrderDriverQueryResponse{}, err
	}

	resp.Driver = &DriverSummary{
		ID:   id,
		Name: driverName.String,
	}
	return resp, nil
}
