package bank

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is an in-memory bank account store for tests and
// database-free runs. It enforces account-number uniqueness like the
// Postgres constraint does.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	byUserID map[int64]Account
}

// NewMemoryRepository builds an empty in-memory bank account store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, byUserID: make(map[int64]Account)}
}

func (r *MemoryRepository) Create(_ context.Context, account Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byUserID {
		if a.AccountNumber == account.AccountNumber {
			return Account{}, ErrDuplicateAccountNumber
		}
	}
	now := time.Now().UTC()
	account.ID = r.nextID
	r.nextID++
	account.CreatedAt = now
	account.UpdatedAt = now
	r.byUserID[account.UserID] = account
	return account, nil
}

func (r *MemoryRepository) FindByUserID(_ context.Context, userID int64) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.byUserID[userID]
	if !ok {
		return Account{}, ErrNotFound
	}
	return account, nil
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
	accounts := make(map[int64]Account, len(r.byUserID))
	for id, a := range r.byUserID {
		accounts[id] = a
	}
	return bankSnapshot{nextID: r.nextID, byUserID: accounts}
}

// Restore replaces the store state with a previously taken snapshot.
func (r *MemoryRepository) Restore(snapshot any) {
	s, ok := snapshot.(bankSnapshot)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID = s.nextID
	r.byUserID = s.byUserID
}

type bankSnapshot struct {
	nextID   int64
	byUserID map[int64]Account
}
