package commands_test

import (
	"errors"
	"testing"

	"kitchenpos/internal/core/application/usecases/commands"
	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDeliverHandler(f *transitionFixture) commands.DeliverReadyOrderCommandHandler {
	return commands.NewDeliverReadyOrderCommandHandler(f.factory, commands.NewOrderLocks(), fixedClock(offDay), f.publisher, f.metrics)
}

func TestDeliverReadyOrderCommandHandler_Handle_DeliversReadyOrder(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()
	o := newOrderIn(t, order.Ready)
	f.expectLoad(t, o)
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("Publish", ctx, order.EventUpdated, mock.AnythingOfType("order.Snapshot")).Once()
	f.metrics.On("OrderTransitioned", order.Ready, order.Delivered, true).Once()

	cmd, err := commands.NewDeliverReadyOrderCommand(o.ID())
	require.NoError(t, err)
	h := newDeliverHandler(f)
	delivered, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, delivered)
	assert.Equal(t, order.Delivered, o.Status())
	f.assertExpectations(t)
}

func TestDeliverReadyOrderCommandHandler_Handle_SkipsOrderNoLongerReady(t *testing.T) {
	for _, status := range []order.Status{order.Pending, order.Delivered, order.Paid, order.Cancelled} {
		t.Run(status.String(), func(t *testing.T) {
			ctx := t.Context()
			f := newTransitionFixture()
			o := newOrderIn(t, status)
			f.expectLoad(t, o)

			cmd, err := commands.NewDeliverReadyOrderCommand(o.ID())
			require.NoError(t, err)
			h := newDeliverHandler(f)
			delivered, err := h.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.False(t, delivered)
			assert.Equal(t, status, o.Status())
			f.assertExpectations(t)
			f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDeliverReadyOrderCommandHandler_Handle_SkipsMissingOrder(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()
	id := kernel.NewUUID()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.orders).Once()
	f.orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderID", id)).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewDeliverReadyOrderCommand(id)
	require.NoError(t, err)
	h := newDeliverHandler(f)
	delivered, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, delivered)
	f.assertExpectations(t)
}

func TestDeliverReadyOrderCommandHandler_Handle_StorageError(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture()
	id := kernel.NewUUID()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.orders).Once()
	f.orders.On("Get", ctx, id).Return(nil, errors.New("connection reset")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewDeliverReadyOrderCommand(id)
	require.NoError(t, err)
	h := newDeliverHandler(f)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	f.assertExpectations(t)
}
