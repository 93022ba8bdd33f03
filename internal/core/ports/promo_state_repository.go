package ports

import (
	"context"

	"kitchenpos/internal/core/domain/model/promo"
)

// PromoStateRepository persists the promotion override singleton.
type PromoStateRepository interface {
	// Get returns the stored state. When nothing readable is stored it returns
	// promo.DefaultState and writes that default back.
	Get(ctx context.Context) (promo.State, error)

	// Save replaces the stored state.
	Save(ctx context.Context, state promo.State) error
}
