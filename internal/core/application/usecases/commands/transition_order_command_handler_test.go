package commands_test

import (
	"errors"
	"testing"
	"time"

	"kitchenpos/internal/core/application/usecases/commands"
	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	table, err := order.NewTable("5")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), offDay.Add(-time.Hour), table,
		[]order.LineItem{{ProductID: "gyoza", Qty: 1, UnitPrice: 60}},
		order.Totals{Subtotal: 60, Total: 60}, "", order.Promo{})
	require.NoError(t, err)

	path := []order.Status{order.Preparing, order.Ready, order.Delivered, order.Paid}
	if status == order.Cancelled {
		path = []order.Status{order.Cancelled}
	}
	for _, next := range path {
		if o.Status() == status {
			break
		}
		_, err = o.ChangeStatus(next, order.TransitionMeta{}, offDay)
		require.NoError(t, err)
	}
	require.Equal(t, status, o.Status())
	return o
}

type transitionFixture struct {
	factory   *MockOrderUoWFactory
	uow       *MockUoW
	orders    *MockOrderRepository
	publisher *MockPublisher
	scheduler *MockScheduler
	metrics   *MockMetrics
}

func newTransitionFixture() *transitionFixture {
	f := &transitionFixture{
		factory:   new(MockOrderUoWFactory),
		uow:       new(MockUoW),
		orders:    new(MockOrderRepository),
		publisher: new(MockPublisher),
		scheduler: new(MockScheduler),
		metrics:   new(MockMetrics),
	}
	f.factory.On("Create").Return(f.uow).Maybe()
	return f
}

func (f *transitionFixture) handler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(f.factory, commands.NewOrderLocks(), fixedClock(offDay), f.publisher, f.scheduler, f.metrics)
}

func (f *transitionFixture) expectLoad(t *testing.T, o *order.Order) {
	ctx := t.Context()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.orders).Once()
	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
}

func (f *transitionFixture) assertExpectations(t *testing.T) {
	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.scheduler.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_ArmsTimerOnReady(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()
	o := newOrderIn(t, order.Preparing)
	f.expectLoad(t, o)
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("Publish", ctx, order.EventUpdated, mock.AnythingOfType("order.Snapshot")).Once()
	f.metrics.On("OrderTransitioned", order.Preparing, order.Ready, false).Once()
	f.scheduler.On("Arm", o.ID()).Once()

	cmd, err := commands.NewTransitionOrderCommand(o.ID(), "ready", "")
	require.NoError(t, err)
	h := f.handler()
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Ready, updated.Status())
	f.assertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_CancelsTimerWhenLeavingReady(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()
	o := newOrderIn(t, order.Ready)
	f.expectLoad(t, o)
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("Publish", ctx, order.EventUpdated, mock.Anything).Once()
	f.metrics.On("OrderTransitioned", order.Ready, order.Cancelled, false).Once()
	f.scheduler.On("Cancel", o.ID()).Once()

	cmd, err := commands.NewTransitionOrderCommand(o.ID(), "cancelled", "cliente se fue")
	require.NoError(t, err)
	h := f.handler()
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	assert.Equal(t, "cliente se fue", updated.CancelReason())
	require.NotNil(t, updated.CancelledAt())
	assert.Equal(t, offDay, *updated.CancelledAt())
	f.assertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_SameStatusIsNoop(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()
	o := newOrderIn(t, order.Preparing)
	f.expectLoad(t, o)

	cmd, err := commands.NewTransitionOrderCommand(o.ID(), "preparing", "")
	require.NoError(t, err)
	h := f.handler()
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, updated.Status())
	f.assertExpectations(t)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()
	o := newOrderIn(t, order.Paid)
	f.expectLoad(t, o)

	cmd, err := commands.NewTransitionOrderCommand(o.ID(), "cancelled", "")
	require.NoError(t, err)
	h := f.handler()
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	var transitionErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, order.Paid, transitionErr.From)
	assert.Equal(t, order.Cancelled, transitionErr.To)
	assert.Equal(t, order.Paid, o.Status())
	f.assertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()
	id := kernel.NewUUID()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.orders).Once()
	f.orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderID", id)).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewTransitionOrderCommand(id, "ready", "")
	require.NoError(t, err)
	h := f.handler()
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.assertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()
	o := newOrderIn(t, order.Pending)
	f.expectLoad(t, o)
	f.orders.On("Update", ctx, o).Return(errors.New("update error")).Once()

	cmd, err := commands.NewTransitionOrderCommand(o.ID(), "preparing", "")
	require.NoError(t, err)
	h := f.handler()
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	f.assertExpectations(t)
	f.scheduler.AssertNotCalled(t, "Cancel", mock.Anything)
}
