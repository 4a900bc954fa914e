package identity

import "context"

// Repository is the identity registry: it persists users and backs lookups
// by each globally unique attribute. Implementations return ErrNotFound when
// no user matches and *DuplicateError when a write collides with an existing
// identity attribute. Reads observe a consistent snapshot per call; the
// caller owns atomicity across check-then-insert sequences.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id int64) error

	FindByID(ctx context.Context, id int64) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByPhone(ctx context.Context, phone string) (User, error)
	FindByUsernameAndPhone(ctx context.Context, username, phone string) (User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]User, error)
}
