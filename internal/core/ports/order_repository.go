// Package ports defines the contracts between the domain core and
// infrastructure adapters, enabling dependency inversion and testability.
package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The store is the single source of truth for order status; all lifecycle
// mutations go through it.
type OrderRepository interface {
	// Add persists a new order aggregate and issues its per-firm sequential
	// order number inside the surrounding transaction.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration of
	// the surrounding transaction. Mutation handlers use it so that transition
	// legality is always judged against the stored status at mutation time,
	// serializing writers per order id.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByFirm retrieves a firm's orders, newest first, optionally
	// filtered by status (pass order.Unknown for no filter).
	GetAllByFirm(ctx context.Context, firmID kernel.UUID, status order.Status) ([]*order.Order, error)
}
