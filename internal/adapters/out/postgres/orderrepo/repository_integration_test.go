package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"waterdelivery/internal/adapters/out/postgres/orderrepo"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite exercises GormOrderRepository against a
// real PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(firmID kernel.UUID) *order.Order {
	geo, err := kernel.NewGeoPoint(41.3111, 69.2797)
	suite.Require().NoError(err)

	bottle, err := order.NewItem(kernel.NewUUID(), "Water 19L", 3, decimal.NewFromInt(18500))
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), firmID, kernel.NewUUID(), "Aziz Karimov",
		"12 Amir Temur Avenue", geo, []order.Item{bottle},
		time.Now().Add(2*time.Hour).UTC(),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderWithItems() {
	ctx := context.Background()
	testOrder := suite.newOrder(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.IsEqual(loaded))
	suite.Equal(order.Pending, loaded.Status())
	suite.Len(loaded.Items(), 1)
	suite.True(decimal.NewFromInt(55500).Equal(loaded.Total()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_IssuesSequentialOrderNumbersPerFirm() {
	ctx := context.Background()
	firmA := kernel.NewUUID()
	firmB := kernel.NewUUID()

	first := suite.newOrder(firmA)
	second := suite.newOrder(firmA)
	other := suite.newOrder(firmB)

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	suite.Equal(int64(1), first.OrderNumber())
	suite.Equal(int64(2), second.OrderNumber())
	suite.Equal(int64(1), other.OrderNumber())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndDriver() {
	ctx := context.Background()
	testOrder := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	driver, err := order.NewDriverRef(kernel.NewUUID(), "Bekzod")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AssignDriver(driver))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, loaded.Status())
	suite.Require().NotNil(loaded.Driver())
	suite.True(driver.ID().IsEqual(loaded.Driver().ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsDriverOnReturnToQueue() {
	ctx := context.Background()
	testOrder := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	driver, err := order.NewDriverRef(kernel.NewUUID(), "Bekzod")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AssignDriver(driver))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	suite.Require().NoError(testOrder.ReturnToQueue())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, loaded.Status())
	suite.Nil(loaded.Driver())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsCancelReason() {
	ctx := context.Background()
	testOrder := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Cancel("client unreachable"))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, loaded.Status())
	suite.Equal("client unreachable", loaded.CancelReason())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrderReturnsNotFound() {
	ctx := context.Background()
	testOrder := suite.newOrder(kernel.NewUUID())

	// never added, so the order number must be set by hand
	suite.Require().NoError(testOrder.SetOrderNumber(1))

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownOrderReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_LoadsOrderUnderLock() {
	ctx := context.Background()
	testOrder := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	lockedRepo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
	loaded, err := lockedRepo.GetForUpdate(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.IsEqual(loaded))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByFirm_FiltersAndOrders() {
	ctx := context.Background()
	firmID := kernel.NewUUID()

	first := suite.newOrder(firmID)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.newOrder(firmID)
	driver, err := order.NewDriverRef(kernel.NewUUID(), "Bekzod")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(second.AssignDriver(driver))
	suite.Require().NoError(suite.repository.Update(ctx, second))

	// order from another firm must not leak in
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(kernel.NewUUID())))

	all, err := suite.repository.GetAllByFirm(ctx, firmID, order.Unknown)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	pending, err := suite.repository.GetAllByFirm(ctx, firmID, order.Pending)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(first.ID().IsEqual(pending[0].ID()))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
