package commands_test

import (
	"context"
	"testing"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdvanceHandler(repo *MockOrderRepository, publisher ports.EventPublisher) commands.AdvanceStageCommandHandler {
	uow := newMockUoW(repo)
	return commands.NewAdvanceStageCommandHandler(
		FuncOrderUoWFactory(func() commands.OrderUoW { return uow }), publisher)
}

func driverActor(t *testing.T, o *order.Order) commands.Actor {
	t.Helper()

	require.NotNil(t, o.Driver())
	actor, err := commands.NewActor(commands.RoleDriver, o.Driver().ID())
	require.NoError(t, err)
	return actor
}

func TestAdvanceStageCommandHandler_Handle(t *testing.T) {
	firmID := kernel.NewUUID()
	clientID := kernel.NewUUID()

	t.Run("should move Assigned order on the way", func(t *testing.T) {
		stored := storedOrder(t, firmID, clientID, order.Assigned)
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", mock.Anything, stored.ID()).Return(stored, nil)
		repo.On("Update", mock.Anything, stored).Return(nil)
		publisher := new(MockEventPublisher)
		publisher.On("PublishOrderChanged", mock.Anything, mock.MatchedBy(func(e ports.OrderChangedEvent) bool {
			return e.FromStatus == order.Assigned && e.ToStatus == order.OnTheWay
		})).Return(nil)

		cmd, err := commands.NewAdvanceStageCommand(stored.ID(), driverActor(t, stored), order.OnTheWay)
		require.NoError(t, err)

		updated, err := newAdvanceHandler(repo, publisher).Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.OnTheWay, updated.Status())
		publisher.AssertExpectations(t)
	})

	t.Run("should complete delivery from OnTheWay", func(t *testing.T) {
		stored := storedOrder(t, firmID, clientID, order.OnTheWay)
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", mock.Anything, stored.ID()).Return(stored, nil)
		repo.On("Update", mock.Anything, stored).Return(nil)
		publisher := new(MockEventPublisher)
		publisher.On("PublishOrderChanged", mock.Anything, mock.Anything).Return(nil)

		cmd, err := commands.NewAdvanceStageCommand(stored.ID(), operatorActor(t, firmID), order.Delivered)
		require.NoError(t, err)

		updated, err := newAdvanceHandler(repo, publisher).Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, updated.Status())
	})

	t.Run("should conflict on skipped stage", func(t *testing.T) {
		stored := storedOrder(t, firmID, clientID, order.Assigned)
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", mock.Anything, stored.ID()).Return(stored, nil)

		cmd, err := commands.NewAdvanceStageCommand(stored.ID(), operatorActor(t, firmID), order.Delivered)
		require.NoError(t, err)

		_, err = newAdvanceHandler(repo, nil).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Assigned, stored.Status())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should conflict on repeated advance to the same stage", func(t *testing.T) {
		stored := storedOrder(t, firmID, clientID, order.OnTheWay)
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", mock.Anything, stored.ID()).Return(stored, nil)

		cmd, err := commands.NewAdvanceStageCommand(stored.ID(), operatorActor(t, firmID), order.OnTheWay)
		require.NoError(t, err)

		_, err = newAdvanceHandler(repo, nil).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should conflict on delivered order", func(t *testing.T) {
		stored := storedOrder(t, firmID, clientID, order.Delivered)
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", mock.Anything, stored.ID()).Return(stored, nil)

		cmd, err := commands.NewAdvanceStageCommand(stored.ID(), operatorActor(t, firmID), order.Delivered)
		require.NoError(t, err)

		_, err = newAdvanceHandler(repo, nil).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should reject driver of a different order", func(t *testing.T) {
		stored := storedOrder(t, firmID, clientID, order.Assigned)
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", mock.Anything, stored.ID()).Return(stored, nil)

		stranger, err := commands.NewActor(commands.RoleDriver, kernel.NewUUID())
		require.NoError(t, err)
		cmd, err := commands.NewAdvanceStageCommand(stored.ID(), stranger, order.OnTheWay)
		require.NoError(t, err)

		_, err = newAdvanceHandler(repo, nil).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should surface not found", func(t *testing.T) {
		orderID := kernel.NewUUID()
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String()))

		cmd, err := commands.NewAdvanceStageCommand(orderID, operatorActor(t, firmID), order.OnTheWay)
		require.NoError(t, err)

		_, err = newAdvanceHandler(repo, nil).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
