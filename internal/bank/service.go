package bank

import "context"

// UserDirectory answers whether a user exists. Satisfied by the identity
// registry; declared here so this package stays decoupled from it.
type UserDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service exposes read and delete access to bank accounts by owner.
type Service struct {
	repo  Repository
	users UserDirectory
}

// NewService builds a bank account service.
func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// GetByUserID returns the account owned by the user, failing with
// ErrNotFound when either the user or the account is absent.
func (s *Service) GetByUserID(ctx context.Context, userID int64) (Account, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return Account{}, err
	}
	if !ok {
		return Account{}, ErrNotFound
	}
	return s.repo.FindByUserID(ctx, userID)
}

// DeleteByUserID removes the account owned by the user.
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
