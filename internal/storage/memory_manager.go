package storage

import (
	"context"
	"sync"
)

// Snapshotter is implemented by in-memory repositories so the memory
// transaction manager can roll their state back on failure.
type Snapshotter interface {
	Snapshot() any
	Restore(snapshot any)
}

// MemoryManager gives in-memory repositories the same all-or-nothing
// semantics the Postgres manager gets from the database. Scopes are
// serialized by a mutex, mirroring the store being the only arbiter.
type MemoryManager struct {
	mu     sync.Mutex
	stores []Snapshotter
}

// NewMemoryManager builds a manager over the given stores.
func NewMemoryManager(stores ...Snapshotter) *MemoryManager {
	return &MemoryManager{stores: stores}
}

// WithinTx snapshots every registered store, runs fn, and restores all
// snapshots if fn fails so no partial write stays observable.
func (m *MemoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshots := make([]any, len(m.stores))
	for i, s := range m.stores {
		snapshots[i] = s.Snapshot()
	}

	if err := fn(ctx); err != nil {
		for i, s := range m.stores {
			s.Restore(snapshots[i])
		}
		return err
	}
	return nil
}
