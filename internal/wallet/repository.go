package wallet

import (
	"context"
	"errors"
)

// ErrNotFound reports that no wallet matches the requested key.
var ErrNotFound = errors.New("wallet not found")

// ErrDuplicateWallet reports an attempt to create a second wallet for the
// same user, caught by the unique constraint on the user reference.
var ErrDuplicateWallet = errors.New("user already has a wallet")

// Repository persists wallets.
type Repository interface {
	Create(ctx context.Context, wallet Wallet) (Wallet, error)
	FindByUserID(ctx context.Context, userID int64) (Wallet, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}
