package wallet

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is an in-memory wallet store for tests and database-free
// runs. The map key is the owning user, which enforces the one-wallet-per-
// user constraint the same way the Postgres unique index does.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	byUserID map[int64]Wallet
}

// NewMemoryRepository builds an empty in-memory wallet store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, byUserID: make(map[int64]Wallet)}
}

func (r *MemoryRepository) Create(_ context.Context, wallet Wallet) (Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUserID[wallet.UserID]; exists {
		return Wallet{}, ErrDuplicateWallet
	}
	now := time.Now().UTC()
	wallet.ID = r.nextID
	r.nextID++
	wallet.CreatedAt = now
	wallet.UpdatedAt = now
	r.byUserID[wallet.UserID] = wallet
	return wallet, nil
}

func (r *MemoryRepository) FindByUserID(_ context.Context, userID int64) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallet, ok := r.byUserID[userID]
	if !ok {
		return Wallet{}, ErrNotFound
	}
	return wallet, nil
}

func (r *MemoryRepository) DeleteByUserID(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUserID[userID]; !ok {
		return ErrNotFound
	}
	delete(r.byUserID, userID)
	return nil
}

// Snapshot copies the store state for the memory transaction manager.
func (r *MemoryRepository) Snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallets := make(map[int64]Wallet, len(r.byUserID))
	for id, w := range r.byUserID {
		wallets[id] = w
	}
	return walletSnapshot{nextID: r.nextID, byUserID: wallets}
}

// Restore replaces the store state with a previously taken snapshot.
func (r *MemoryRepository) Restore(snapshot any) {
	s, ok := snapshot.(walletSnapshot)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID = s.nextID
	r.byUserID = s.byUserID
}

type walletSnapshot struct {
	nextID   int64
	byUserID map[int64]Wallet
}
