package queries

import (
	"context"

	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/promo"
	"kitchenpos/internal/core/ports"
)

type GetPromoStatusQueryHandler struct {
	promoRepo ports.PromoStateRepository
	policy    *promo.Policy
	clock     kernel.Clock
}

func NewGetPromoStatusQueryHandler(
	promoRepo ports.PromoStateRepository,
	policy *promo.Policy,
	clock kernel.Clock,
) GetPromoStatusQueryHandler {
	return GetPromoStatusQueryHandler{
		promoRepo: promoRepo,
		policy:    policy,
		clock:     clock,
	}
}

// Handle evaluates the stored override state at the current instant.
func (h GetPromoStatusQueryHandler) Handle(ctx context.Context, query GetPromoStatusQuery) (promo.Evaluation, error) {
	if err := query.Validate(); err != nil {
		return promo.Evaluation{}, err
	}

	state, err := h.promoRepo.Get(ctx)
	if err != nil {
		return promo.Evaluation{}, err
	}

	return h.policy.Evaluate(state, h.clock.Now()), nil
}
