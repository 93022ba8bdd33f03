// Package filestore keeps orders and the promotion state in two JSON documents under a
// data directory: orders.json holds the whole order collection and promo.json the
// override singleton.
//
// Key Features:
//   - Whole-collection load and save; the file is the unit of persistence
//   - Atomic writes through a temporary file and rename
//   - A single writer lock shared by every unit of work, so read-check-write
//     sequences on the same order are serialized
//   - A missing document reads as empty; an unreadable one is logged and read as empty
//
// Usage:
//
//	store, err := filestore.NewStore("data", logger)
//	factory := filestore.NewUnitOfWorkFactory(store)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//	// repository operations
//	return uow.Commit(ctx)
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/core/domain/model/promo"
	"kitchenpos/internal/pkg/errs"
)

const (
	OrdersFile = "orders.json"
	PromoFile  = "promo.json"
)

// Store owns the data directory and its writer lock.
type Store struct {
	dir    string
	lock   chan struct{}
	logger *slog.Logger
}

// NewStore prepares dir, creating it when absent.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.NewStorageError(dir, err)
	}

	return &Store{
		dir:    dir,
		lock:   make(chan struct{}, 1),
		logger: logger.With("component", "filestore"),
	}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.lock
}

// loadOrders reads the order collection. Missing and unreadable files both yield an empty collection.
func (s *Store) loadOrders() []order.Snapshot {
	var snapshots []order.Snapshot
	if !s.readJSON(OrdersFile, &snapshots) {
		return []order.Snapshot{}
	}
	return snapshots
}

func (s *Store) saveOrders(snapshots []order.Snapshot) error {
	return s.writeJSON(OrdersFile, snapshots)
}

// loadPromo reads the override state. found is false when the document is missing or unreadable.
func (s *Store) loadPromo() (state promo.State, found bool) {
	if !s.readJSON(PromoFile, &state) {
		return promo.DefaultState(), false
	}
	return state, true
}

func (s *Store) savePromo(state promo.State) error {
	return s.writeJSON(PromoFile, state)
}

func (s *Store) readJSON(name string, v any) bool {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	if err != nil {
		s.logger.Error("failed to read document", "path", path, "error", err)
		return false
	}
	if err = json.Unmarshal(data, v); err != nil {
		s.logger.Error("document is corrupt, treating it as empty", "path", path, "error", err)
		return false
	}
	return true
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errs.NewStorageError(name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return errs.NewStorageError(name, err)
	}
	tmpPath := tmp.Name()

	if err = writeAndSync(tmp, data); err != nil {
		_ = os.Remove(tmpPath)
		return errs.NewStorageError(name, err)
	}

	if err = os.Rename(tmpPath, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmpPath)
		return errs.NewStorageError(name, err)
	}

	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync: %w", err)
	}
	return f.Close()
}
