package wallet

import "context"

// UserDirectory answers whether a user exists. Satisfied by the identity
// registry; declared here so this package stays decoupled from it.
type UserDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service exposes read and delete access to wallets by owner.
type Service struct {
	repo  Repository
	users UserDirectory
}

// NewService builds a wallet service.
func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// GetByUserID returns the wallet owned by the user, failing with
// ErrNotFound when either the user or the wallet is absent.
func (s *Service) GetByUserID(ctx context.Context, userID int64) (Wallet, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return Wallet{}, err
	}
	if !ok {
		return Wallet{}, ErrNotFound
	}
	return s.repo.FindByUserID(ctx, userID)
}

// DeleteByUserID removes the wallet owned by the user.
func (s *Service) DeleteByUserID(ctx context.Context, userID int64) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.repo.DeleteByUserID(ctx, userID)
}
