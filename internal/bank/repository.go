package bank

import (
	"context"
	"errors"
)

// ErrNotFound reports that no bank account matches the requested key.
var ErrNotFound = errors.New("bank account not found")

// ErrDuplicateAccountNumber reports a collision on the generated account
// number; the provisioner regenerates and retries on this error.
var ErrDuplicateAccountNumber = errors.New("account number already in use")

// Repository persists bank accounts.
type Repository interface {
	Create(ctx context.Context, account Account) (Account, error)
	FindByUserID(ctx context.Context, userID int64) (Account, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}
