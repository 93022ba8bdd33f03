package commands

import (
	"context"
	"fmt"

	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/promo"
	"kitchenpos/internal/pkg/errs"
)

// DefaultConfirmText is the phrase an operator types to change the override.
const DefaultConfirmText = "ACTIVAR PROMO 2X1"

// SetPromoOverrideCommandHandler persists the manual promotion override.
type SetPromoOverrideCommandHandler struct {
	uowFactory  PromoUoWFactory
	policy      *promo.Policy
	clock       kernel.Clock
	confirmText string
}

// NewSetPromoOverrideCommandHandler creates the handler. An empty confirmText selects
// DefaultConfirmText.
func NewSetPromoOverrideCommandHandler(
	uowFactory PromoUoWFactory,
	policy *promo.Policy,
	clock kernel.Clock,
	confirmText string,
) SetPromoOverrideCommandHandler {
	if confirmText == "" {
		confirmText = DefaultConfirmText
	}
	return SetPromoOverrideCommandHandler{
		uowFactory:  uowFactory,
		policy:      policy,
		clock:       clock,
		confirmText: confirmText,
	}
}

// Handle checks the confirmation phrase, stores {enabled, now} and returns the
// resulting promotion status. A wrong phrase changes nothing.
func (h *SetPromoOverrideCommandHandler) Handle(ctx context.Context, cmd SetPromoOverrideCommand) (promo.Evaluation, error) {
	if err := cmd.Validate(); err != nil {
		return promo.Evaluation{}, err
	}
	if cmd.ConfirmText() != h.confirmText {
		return promo.Evaluation{}, errs.NewValueIsInvalidErrorWithCause(
			"confirmText",
			fmt.Errorf("type %s to confirm", h.confirmText),
		)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return promo.Evaluation{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	state := promo.NewState(cmd.Enabled(), now)
	if err := uow.PromoStateRepository().Save(ctx, state); err != nil {
		return promo.Evaluation{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return promo.Evaluation{}, err
	}

	return h.policy.Evaluate(state, now), nil
}
