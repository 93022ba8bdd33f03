package commands_test

import (
	"errors"
	"testing"

	"kitchenpos/internal/core/application/usecases/commands"
	"kitchenpos/internal/core/domain/model/promo"
	"kitchenpos/internal/core/ports"
	"kitchenpos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPromoUoW struct{ MockTx }

func (m *MockPromoUoW) PromoStateRepository() ports.PromoStateRepository {
	args := m.Called()
	return args.Get(0).(ports.PromoStateRepository)
}

func TestSetPromoOverrideCommandHandler_Handle_Enables(t *testing.T) {
	ctx := t.Context()
	repo := new(MockPromoStateRepository)
	uow := new(MockPromoUoW)
	factory := new(MockPromoUoWFactory)
	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PromoStateRepository").Return(repo).Once(),
		repo.On("Save", ctx, promo.NewState(true, offDay)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewSetPromoOverrideCommandHandler(factory, newPolicy(t), fixedClock(offDay), "")
	status, err := h.Handle(ctx, commands.NewSetPromoOverrideCommand(true, "ACTIVAR PROMO 2X1"))

	require.NoError(t, err)
	assert.True(t, status.Active)
	assert.True(t, status.ManualOverrideEnabled)
	assert.Equal(t, promo.SourceOverride, status.Source)
	require.NotNil(t, status.UpdatedAt)
	assert.Equal(t, offDay, *status.UpdatedAt)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestSetPromoOverrideCommandHandler_Handle_WrongPhrase(t *testing.T) {
	factory := new(MockPromoUoWFactory)

	h := commands.NewSetPromoOverrideCommandHandler(factory, newPolicy(t), fixedClock(offDay), "")
	_, err := h.Handle(t.Context(), commands.NewSetPromoOverrideCommand(true, "activar promo"))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "ACTIVAR PROMO 2X1")
	factory.AssertNotCalled(t, "Create")
}

func TestSetPromoOverrideCommandHandler_Handle_CustomPhrase(t *testing.T) {
	ctx := t.Context()
	repo := new(MockPromoStateRepository)
	uow := new(MockPromoUoW)
	factory := new(MockPromoUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PromoStateRepository").Return(repo).Once()
	repo.On("Save", ctx, mock.AnythingOfType("promo.State")).Return(errors.New("disk full")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewSetPromoOverrideCommandHandler(factory, newPolicy(t), fixedClock(offDay), "SI")
	_, err := h.Handle(ctx, commands.NewSetPromoOverrideCommand(false, "SI"))

	require.Error(t, err)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestSetPromoOverrideCommand_NotConstructed(t *testing.T) {
	require.ErrorIs(t, commands.SetPromoOverrideCommand{}.Validate(), commands.ErrSetPromoOverrideCommandIsNotConstructed)
}
