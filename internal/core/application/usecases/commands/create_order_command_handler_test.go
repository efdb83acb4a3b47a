package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

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
func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPickingRepository struct{ mock.Mock }

func (m *MockPickingRepository) Add(ctx context.Context, p *picking.Picking) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPickingRepository) Update(ctx context.Context, p *picking.Picking) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPickingRepository) Get(ctx context.Context, id kernel.UUID) (*picking.Picking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*picking.Picking), args.Error(1)
}
func (m *MockPickingRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*picking.Picking, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*picking.Picking), args.Error(1)
}
func (m *MockPickingRepository) GetAllInWaitingStatus(ctx context.Context) ([]*picking.Picking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*picking.Picking), args.Error(1)
}
func (m *MockPickingRepository) AddReturn(ctx context.Context, rp *picking.ReturnPicking) error {
	args := m.Called(ctx, rp)
	return args.Error(0)
}
func (m *MockPickingRepository) UpdateReturn(ctx context.Context, rp *picking.ReturnPicking) error {
	args := m.Called(ctx, rp)
	return args.Error(0)
}
func (m *MockPickingRepository) GetReturnsByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*picking.ReturnPicking, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*picking.ReturnPicking), args.Error(1)
}

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

// MockSalesUoW extends the order unit of work with picking access for the
// create workflow.
type MockSalesUoW struct{ MockOrderUoW }

func (m *MockSalesUoW) PickingRepository() ports.PickingRepository {
	args := m.Called()
	return args.Get(0).(ports.PickingRepository)
}

type MockSalesUoWFactory struct{ mock.Mock }

func (m *MockSalesUoWFactory) Create() commands.SalesUoW {
	args := m.Called()
	return args.Get(0).(commands.SalesUoW)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		order.InvoiceOnOrder, someLines())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	pickingRepo := new(MockPickingRepository)
	uow := new(MockSalesUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("PickingRepository").Return(pickingRepo).Once(),
		pickingRepo.On("Add", mock.Anything, mock.AnythingOfType("*picking.Picking")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSalesUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, services.NewDeliveryPlanner())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	pickingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ConfirmedOrderWithPickings(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		order.InvoiceOnOrder, someLines())
	require.NoError(t, err)

	var persistedOrder *order.Order
	var persistedPicking *picking.Picking

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			persistedOrder = args.Get(1).(*order.Order)
		}).Return(nil).Once()

	pickingRepo := new(MockPickingRepository)
	pickingRepo.On("Add", mock.Anything, mock.AnythingOfType("*picking.Picking")).
		Run(func(args mock.Arguments) {
			persistedPicking = args.Get(1).(*picking.Picking)
		}).Return(nil).Once()

	uow := new(MockSalesUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PickingRepository").Return(pickingRepo)

	factory := new(MockSalesUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, services.NewDeliveryPlanner())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, persistedOrder)
	require.Equal(t, order.Sale, persistedOrder.Status())
	require.NotNil(t, persistedPicking)
	require.Equal(t, cmd.OrderID(), persistedPicking.OrderID())
	require.Len(t, persistedPicking.Moves(), len(cmd.Lines()))
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockSalesUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, services.NewDeliveryPlanner())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_BadLineRejectedBeforeTx(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		order.InvoiceOnOrder, []commands.LineParams{
			{ProductID: kernel.NewUUID(), Qty: 0, UnitPrice: 10},
		})
	require.NoError(t, err)

	// Line-level validation happens in the aggregate before any transaction
	// is opened; the factory must not be touched.
	factory := new(MockSalesUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, services.NewDeliveryPlanner())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		order.InvoiceOnOrder, someLines())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockSalesUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSalesUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, services.NewDeliveryPlanner())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}
