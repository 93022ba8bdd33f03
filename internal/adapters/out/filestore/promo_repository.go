package filestore

import (
	"context"

	"kitchenpos/internal/core/domain/model/promo"
)

// PromoStateRepository implements ports.PromoStateRepository over promo.json.
type PromoStateRepository struct {
	uow *UnitOfWork
}

// Get returns the stored override state. A missing or unreadable document yields the
// default state, which is written back: immediately outside a transaction, on Commit inside one.
func (r *PromoStateRepository) Get(ctx context.Context) (promo.State, error) {
	if r.uow.active {
		if r.uow.promo == nil {
			state, found := r.uow.store.loadPromo()
			r.uow.promo = &state
			r.uow.promoDirty = !found
		}
		return *r.uow.promo, nil
	}

	store := r.uow.store
	if err := store.acquire(ctx); err != nil {
		return promo.State{}, err
	}
	defer store.release()

	state, found := store.loadPromo()
	if !found {
		if err := store.savePromo(state); err != nil {
			return promo.State{}, err
		}
	}
	return state, nil
}

// Save replaces the override state.
func (r *PromoStateRepository) Save(ctx context.Context, state promo.State) error {
	if r.uow.active {
		r.uow.promo = &state
		r.uow.promoDirty = true
		return nil
	}

	store := r.uow.store
	if err := store.acquire(ctx); err != nil {
		return err
	}
	defer store.release()

	return store.savePromo(state)
}
