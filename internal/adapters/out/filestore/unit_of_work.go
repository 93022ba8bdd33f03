package filestore

import (
	"context"
	"errors"

	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/core/domain/model/promo"
	"kitchenpos/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates file-backed units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages changes to an in-memory copy of the documents while holding the
// store's writer lock. Commit writes what changed; Rollback discards it.
//
// Without Begin, every repository call runs its own short locked load/save cycle.
type UnitOfWork struct {
	store *Store

	active      bool
	orders      []order.Snapshot
	ordersDirty bool
	promo       *promo.State
	promoDirty  bool
}

// Begin takes the writer lock and loads the order collection.
// Calling Begin on an active unit of work is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}
	if err := uow.store.acquire(ctx); err != nil {
		return err
	}

	uow.active = true
	uow.orders = uow.store.loadOrders()
	uow.ordersDirty = false
	uow.promo = nil
	uow.promoDirty = false
	return nil
}

// Commit writes the staged documents and releases the lock.
// The lock is released even when a write fails.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	defer uow.finish()

	if uow.ordersDirty {
		if err := uow.store.saveOrders(uow.orders); err != nil {
			return err
		}
	}
	if uow.promoDirty && uow.promo != nil {
		if err := uow.store.savePromo(*uow.promo); err != nil {
			return err
		}
	}
	return nil
}

// Rollback discards staged changes and releases the lock.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.finish()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) PromoStateRepository() ports.PromoStateRepository {
	return &PromoStateRepository{uow: uow}
}

func (uow *UnitOfWork) finish() {
	uow.active = false
	uow.orders = nil
	uow.ordersDirty = false
	uow.promo = nil
	uow.promoDirty = false
	uow.store.release()
}

// withOrders runs fn over the order collection. Inside a transaction it uses the staged
// copy; otherwise it performs a locked load, fn, and a save when write is set.
func (uow *UnitOfWork) withOrders(ctx context.Context, write bool, fn func(orders *[]order.Snapshot) error) error {
	if uow.active {
		if err := fn(&uow.orders); err != nil {
			return err
		}
		if write {
			uow.ordersDirty = true
		}
		return nil
	}

	if err := uow.store.acquire(ctx); err != nil {
		return err
	}
	defer uow.store.release()

	orders := uow.store.loadOrders()
	if err := fn(&orders); err != nil {
		return err
	}
	if write {
		return uow.store.saveOrders(orders)
	}
	return nil
}
