package commands_test

import (
	"context"
	"testing"
	"time"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByFirm(
	ctx context.Context, firmID kernel.UUID, status order.Status,
) ([]*order.Order, error) {
	args := m.Called(ctx, firmID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct {
	mock.Mock
	repo ports.OrderRepository
}

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.repo
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderChanged(ctx context.Context, event ports.OrderChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// newMockUoW wires a MockOrderUoW with the usual happy-path transaction
// expectations: Begin succeeds, Rollback is tolerated by the deferred call,
// and Commit succeeds.
func newMockUoW(repo ports.OrderRepository) *MockOrderUoW {
	uow := &MockOrderUoW{repo: repo}
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	return uow
}

func storedItems(t *testing.T) []order.Item {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Water 19L", 2, decimal.NewFromInt(18500))
	require.NoError(t, err)
	pump, err := order.NewItem(kernel.NewUUID(), "Manual pump", 1, decimal.NewFromInt(10000))
	require.NoError(t, err)
	return []order.Item{item, pump}
}

// storedOrder builds an aggregate as the repository would return it,
// already advanced to the requested status with driver where required.
func storedOrder(t *testing.T, firmID, clientID kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	geo, err := kernel.NewGeoPoint(41.2995, 69.2401)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), firmID, clientID, "Aziz Karimov",
		"12 Amir Temur Avenue", geo, storedItems(t), time.Now().Add(2*time.Hour))
	require.NoError(t, err)

	if status == order.Pending {
		return o
	}

	driver, err := order.NewDriverRef(kernel.NewUUID(), "Bekzod")
	require.NoError(t, err)
	require.NoError(t, o.AssignDriver(driver))

	switch status {
	case order.Assigned:
	case order.OnTheWay:
		require.NoError(t, o.Advance(order.OnTheWay))
	case order.Delivered:
		require.NoError(t, o.Advance(order.OnTheWay))
		require.NoError(t, o.Advance(order.Delivered))
	case order.Cancelled:
		require.NoError(t, o.Cancel("test cancellation"))
	default:
		t.Fatalf("storedOrder: unsupported status %s", status)
	}
	return o
}

func operatorActor(t *testing.T, firmID kernel.UUID) commands.Actor {
	t.Helper()

	actor, err := commands.NewActor(commands.RoleOperator, firmID)
	require.NoError(t, err)
	return actor
}
