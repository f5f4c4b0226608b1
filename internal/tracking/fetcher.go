package tracking

import (
	"context"

	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
)

// QueryStatusFetcher reads tracking state straight from the read-side
// queries. Used when the watcher runs inside the service process.
type QueryStatusFetcher struct {
	statusHandler queries.GetOrderStatusQueryHandler
	driverHandler queries.GetOrderDriverQueryHandler
}

// NewQueryStatusFetcher creates a fetcher over the order read queries.
func NewQueryStatusFetcher(
	statusHandler queries.GetOrderStatusQueryHandler,
	driverHandler queries.GetOrderDriverQueryHandler,
) QueryStatusFetcher {
	return QueryStatusFetcher{
		statusHandler: statusHandler,
		driverHandler: driverHandler,
	}
}

// Fetch reads the order's status and driver in two queries. The driver read
// is skipped when the status read already failed.
func (f QueryStatusFetcher) Fetch(ctx context.Context, orderID kernel.UUID) (Snapshot, error) {
	statusQuery, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return Snapshot{}, err
	}
	status, err := f.statusHandler.Handle(ctx, statusQuery)
	if err != nil {
		return Snapshot{}, err
	}

	driverQuery, err := queries.NewGetOrderDriverQuery(orderID)
	if err != nil {
		return Snapshot{}, err
	}
	driver, err := f.driverHandler.Handle(ctx, driverQuery)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		Status:              status.Status,
		EstimatedDeliveryAt: status.EstimatedDeliveryAt,
	}
	if driver.Driver != nil {
		snapshot.Driver = &DriverInfo{
			ID:   driver.Driver.ID,
			Name: driver.Driver.Name,
		}
	}

	return snapshot, nil
}
