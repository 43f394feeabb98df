package commands_test

import (
	"context"
	"errors"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderUoW struct{ mock.Mock }

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
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func validCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		"Ada Lovelace", "ada@example.com",
		[]commands.ItemSpec{
			{ProductID: kernel.NewUUID(), Quantity: 2, UnitPriceCents: 1500},
			{ProductID: kernel.NewUUID(), Quantity: 1, UnitPriceCents: 499},
		},
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)

	aggregate := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	assert.Equal(t, cmd.OrderID(), aggregate.ID())
	assert.Equal(t, order.Placed, aggregate.Status())
	assert.Equal(t, int64(3499), aggregate.TotalCents())
	assert.Len(t, aggregate.Items(), 2)
	for _, item := range aggregate.Items() {
		assert.Equal(t, order.Placed, item.Status())
	}

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory)

	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Return(errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
	uow.AssertNotCalled(t, "Commit")
}

func TestNewCreateOrderCommand_Validation(t *testing.T) {
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	items := []commands.ItemSpec{{ProductID: kernel.NewUUID(), Quantity: 1, UnitPriceCents: 100}}

	t.Run("should reject empty customer name", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(orderID, customerID, "", "ada@example.com", items)
		require.Error(t, err)
	})

	t.Run("should reject empty item list", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(orderID, customerID, "Ada", "ada@example.com", nil)
		require.ErrorIs(t, err, commands.ErrOrderNeedsItems)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		bad := []commands.ItemSpec{{ProductID: kernel.NewUUID(), Quantity: 0, UnitPriceCents: 100}}
		_, err := commands.NewCreateOrderCommand(orderID, customerID, "Ada", "ada@example.com", bad)
		require.Error(t, err)
	})

	t.Run("should reject negative unit price", func(t *testing.T) {
		bad := []commands.ItemSpec{{ProductID: kernel.NewUUID(), Quantity: 1, UnitPriceCents: -1}}
		_, err := commands.NewCreateOrderCommand(orderID, customerID, "Ada", "ada@example.com", bad)
		require.Error(t, err)
	})
}
