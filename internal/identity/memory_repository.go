package identity

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory identity registry for tests and for
// running the API without a database. It enforces the same uniqueness
// rules the Postgres constraints do.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]User
}

// NewMemoryRepository builds an empty in-memory registry.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, users: make(map[int64]User)}
}

func (r *MemoryRepository) Create(_ context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(user, 0); err != nil {
		return User{}, err
	}
	now := time.Now().UTC()
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	return user, nil
}

func (r *MemoryRepository) Update(_ context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return User{}, ErrNotFound
	}
	if err := r.checkUnique(user, user.ID); err != nil {
		return User{}, err
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = user
	return user, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepository) FindByUsername(ctx context.Context, username string) (User, error) {
	return r.find(func(u User) bool { return u.Username == username })
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.find(func(u User) bool { return u.Email == email })
}

func (r *MemoryRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	return r.find(func(u User) bool { return u.PhoneNumber == phone })
}

func (r *MemoryRepository) FindByUsernameAndPhone(ctx context.Context, username, phone string) (User, error) {
	return r.find(func(u User) bool { return u.Username == username && u.PhoneNumber == phone })
}

func (r *MemoryRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Snapshot copies the full store state for the memory transaction manager.
func (r *MemoryRepository) Snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make(map[int64]User, len(r.users))
	for id, u := range r.users {
		users[id] = u
	}
	return memorySnapshot{nextID: r.nextID, users: users}
}

// Restore replaces the store state with a previously taken snapshot.
func (r *MemoryRepository) Restore(snapshot any) {
	s, ok := snapshot.(memorySnapshot)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID = s.nextID
	r.users = s.users
}

type memorySnapshot struct {
	nextID int64
	users  map[int64]User
}

func (r *MemoryRepository) find(match func(User) bool) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepository) checkUnique(user User, selfID int64) error {
	for _, u := range r.users {
		if u.ID == selfID {
			continue
		}
		switch {
		case u.Username == user.Username:
			return &DuplicateError{Field: "username"}
		case u.Email == user.Email:
			return &DuplicateError{Field: "email"}
		case u.PhoneNumber == user.PhoneNumber:
			return &DuplicateError{Field: "phone_number"}
		}
	}
	return nil
}
