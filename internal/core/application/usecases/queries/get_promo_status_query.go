package queries

import (
	"errors"

	"kitchenpos/internal/pkg/guard"
)

var ErrGetPromoStatusQueryIsNotConstructed = errors.New(
	"GetPromoStatusQuery must be created via NewGetPromoStatusQuery constructor",
)

// GetPromoStatusQuery reports whether the promotion is active right now and why.
type GetPromoStatusQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPromoStatusQuery() GetPromoStatusQuery {
	return GetPromoStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPromoStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetPromoStatusQueryIsNotConstructed)
}
