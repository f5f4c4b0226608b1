// Package orderrepo persists order aggregates to PostgreSQL via GORM,
// mapping between the domain model and its relational representation.
package orderrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the database shape of an order aggregate. The driver reference
// is denormalized into two nullable columns; items live in their own table.
// The (firm_id, order_number) pair is unique so the per-firm sequence stays
// gap-checked at the database level.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber         int64     `gorm:"uniqueIndex:idx_orders_firm_number"`
	FirmID              uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_orders_firm_number"`
	ClientID            uuid.UUID `gorm:"type:uuid;index"`
	ClientName          string
	Address             string
	GeoLat              float64
	GeoLon              float64
	Total               decimal.Decimal `gorm:"type:numeric"`
	Status              int             `gorm:"index"`
	DriverID            *uuid.UUID      `gorm:"type:uuid;index"`
	DriverName          *string
	CancelReason        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	EstimatedDeliveryAt time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one frozen cart line of an order. Lines never change after
// insert, so the composite key of order and product is enough.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric"`
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	var driverName *string
	if driver := aggregate.Driver(); driver != nil {
		raw := driver.ID().Bytes()
		name := driver.Name()
		driverID = &raw
		driverName = &name
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		OrderNumber:         aggregate.OrderNumber(),
		FirmID:              aggregate.FirmID().Bytes(),
		ClientID:            aggregate.ClientID().Bytes(),
		ClientName:          aggregate.ClientName(),
		Address:             aggregate.Address(),
		GeoLat:              aggregate.Geo().Latitude(),
		GeoLon:              aggregate.Geo().Longitude(),
		Total:               aggregate.Total(),
		Status:              int(aggregate.Status()),
		DriverID:            driverID,
		DriverName:          driverName,
		CancelReason:        aggregate.CancelReason(),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
		EstimatedDeliveryAt: aggregate.EstimatedDeliveryAt(),
		Items:               items,
	}
}

// toDomain reconstructs an order aggregate from its database representation
// using RestoreOrder, which re-checks structural consistency.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	firmID, err := kernel.UUIDFromBytes(dto.FirmID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	geo, err := kernel.NewGeoPoint(dto.GeoLat, dto.GeoLon)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(productID, itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var driver *order.DriverRef
	if dto.DriverID != nil {
		driverID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		var name string
		if dto.DriverName != nil {
			name = *dto.DriverName
		}

		ref, driverErr := order.NewDriverRef(driverID, name)
		if driverErr != nil {
			return nil, driverErr
		}
		driver = &ref
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		firmID,
		clientID,
		dto.ClientName,
		dto.Address,
		geo,
		items,
		dto.Total,
		order.Status(dto.Status),
		driver,
		dto.CancelReason,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.EstimatedDeliveryAt,
	)
}
