package commands

import (
	"sync"

	"kitchenpos/internal/core/domain/model/kernel"
)

// OrderLocks serializes handlers working on the same order from Begin through the
// broadcast and timer sync, so observers and the delivery timer follow commit order.
// One instance is shared by every order command handler.
type OrderLocks struct {
	mu    sync.Mutex
	locks map[kernel.UUID]*orderLock
}

type orderLock struct {
	mu   sync.Mutex
	refs int
}

func NewOrderLocks() *OrderLocks {
	return &OrderLocks{locks: make(map[kernel.UUID]*orderLock)}
}

// Lock blocks until the caller owns the order and returns the matching unlock.
func (l *OrderLocks) Lock(id kernel.UUID) (unlock func()) {
	l.mu.Lock()
	entry, found := l.locks[id]
	if !found {
		entry = &orderLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
