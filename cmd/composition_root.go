package cmd

import (
	"waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/tracking"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, publisher ports.EventPublisher) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAdvanceStageCommandHandler() commands.AdvanceStageCommandHandler {
	return commands.NewAdvanceStageCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateReturnToQueueCommandHandler() commands.ReturnToQueueCommandHandler {
	return commands.NewReturnToQueueCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderDriverQueryHandler() queries.GetOrderDriverQueryHandler {
	return queries.NewGetOrderDriverQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderCountsQueryHandler() queries.GetOrderCountsQueryHandler {
	return queries.NewGetOrderCountsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueOrderCountQueryHandler() queries.GetOverdueOrderCountQueryHandler {
	return queries.NewGetOverdueOrderCountQueryHandler(c.gormDB)
}

// CreateOrderStatusWatcher builds a tracking watcher over the read queries.
// The sink is caller-provided: the service process plugs in its push
// notification gateway, tests plug in a recorder.
func (c *CompositionRoot) CreateOrderStatusWatcher(
	sink tracking.NotificationSink, opts ...tracking.WatcherOption,
) *tracking.Watcher {
	fetcher := tracking.NewQueryStatusFetcher(
		c.CreateGetOrderStatusQueryHandler(),
		c.CreateGetOrderDriverQueryHandler(),
	)
	return tracking.NewWatcher(fetcher, sink, opts...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
