package queries

import (
	"context"
	"database/sql"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads a firm's order list from the database.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order list queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query. Rows come back newest first; an empty list is a
// successful response, not an error.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			id,
			order_number,
			client_id,
			client_name,
			address,
			total,
			status,
			driver_id,
			driver_name,
			created_at,
			estimated_delivery_at
		FROM orders
		WHERE firm_id = ?
	`
	args := []any{query.FirmID().Bytes()}
	if query.Status() != order.Unknown {
		sqlText += ` AND status = ?`
		args = append(args, int(query.Status()))
	}
	sqlText += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id                  uuid.UUID
			orderNumber         int64
			clientID            uuid.UUID
			clientName          string
			address             string
			total               decimal.Decimal
			status              int
			driverID            *uuid.UUID
			driverName          sql.NullString
			createdAt           time.Time
			estimatedDeliveryAt time.Time
		)

		if err = rows.Scan(
			&id,
			&orderNumber,
			&clientID,
			&clientName,
			&address,
			&total,
			&status,
			&driverID,
			&driverName,
			&createdAt,
			&estimatedDeliveryAt,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		client, idErr := kernel.UUIDFromBytes(clientID[:])
		if idErr != nil {
			return nil, idErr
		}

		orderStatus := order.Status(status)
		stage, stageErr := order.StageForStatus(orderStatus)
		if stageErr != nil {
			return nil, stageErr
		}

		resp := ListOrdersQueryResponse{
			ID:                  orderID,
			OrderNumber:         orderNumber,
			ClientID:            client,
			ClientName:          clientName,
			Address:             address,
			Total:               total,
			Status:              orderStatus,
			Stage:               stage,
			CreatedAt:           createdAt,
			EstimatedDeliveryAt: estimatedDeliveryAt,
		}

		if driverID != nil {
			dID, dErr := kernel.UUIDFromBytes((*driverID)[:])
			if dErr != nil {
				return nil, dErr
			}
			resp.Driver = &DriverSummary{ID: dID, Name: driverName.String}
		}

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
