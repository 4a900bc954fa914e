package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ewallet/ewallet/internal/bank"
	"github.com/ewallet/ewallet/internal/country"
	"github.com/ewallet/ewallet/internal/notification"
	"github.com/ewallet/ewallet/internal/storage"
	"github.com/ewallet/ewallet/internal/wallet"
)

// Account numbers are random; regenerate a bounded number of times if the
// store reports a collision before giving up.
const maxAccountNumberAttempts = 5

// Service provisions user identities together with their bank account and
// wallet, and keeps the three records consistent across update and delete.
type Service struct {
	users    Repository
	banks    bank.Repository
	wallets  wallet.Repository
	tx       storage.Manager
	policies country.Table
	hasher   PasswordHasher
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService builds the provisioning service.
func NewService(users Repository, banks bank.Repository, wallets wallet.Repository, tx storage.Manager, policies country.Table, hasher PasswordHasher, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		banks:    banks,
		wallets:  wallets,
		tx:       tx,
		policies: policies,
		hasher:   hasher,
		notifier: notifier,
		logger:   logger,
	}
}

// Provision atomically creates a user, its bank account, and its wallet.
// Either all three records exist afterwards or none do.
func (s *Service) Provision(ctx context.Context, in RegistrationInput) (Projection, error) {
	if verr := ValidateRegistration(in); verr != nil {
		return Projection{}, verr
	}

	fullPhone := in.FullPhone()
	if err := s.checkAvailable(ctx, in.Username, in.Email, fullPhone, 0); err != nil {
		return Projection{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Projection{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PhoneNumber:  fullPhone,
		PasswordHash: hash,
		Role:         RoleUser,
	}

	var created User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err = s.users.Create(ctx, user)
		if err != nil {
			return err
		}

		policy := s.policies.ForPhone(created.PhoneNumber)

		if _, err := s.createBankAccount(ctx, created, policy); err != nil {
			return err
		}

		// Wallets always start empty regardless of country.
		_, err = s.wallets.Create(ctx, wallet.Wallet{
			PhoneNumber: created.PhoneNumber,
			Balance:     0,
			Currency:    policy.Currency,
			UserID:      created.ID,
		})
		return err
	})
	if err != nil {
		return Projection{}, translateProvisionError(err)
	}

	s.notifyWelcome(ctx, created)

	s.logger.Info("user provisioned",
		slog.Int64("user_id", created.ID),
		slog.String("username", created.Username),
	)
	return Project(created), nil
}

// createBankAccount inserts the bank account, regenerating the account
// number when the store reports a collision on it. Each attempt gets its
// own savepoint: without one, the first unique violation would abort the
// enclosing Postgres transaction and every retry would fail with 25P02.
func (s *Service) createBankAccount(ctx context.Context, owner User, policy country.Policy) (bank.Account, error) {
	var lastErr error
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		var account bank.Account
		err := storage.WithSavepoint(ctx, func(ctx context.Context) error {
			var err error
			account, err = s.banks.Create(ctx, bank.Account{
				AccountNumber: bank.NewAccountNumber(),
				PhoneNumber:   owner.PhoneNumber,
				Balance:       policy.InitialBalance,
				Currency:      policy.Currency,
				UserID:        owner.ID,
			})
			return err
		})
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, bank.ErrDuplicateAccountNumber) {
			return bank.Account{}, err
		}
		lastErr = err
	}
	return bank.Account{}, fmt.Errorf("generate unique account number: %w", lastErr)
}

// Update applies field changes to a user, re-validating uniqueness for any
// identity attribute that actually changes. Bank and wallet phone mirrors
// are left as created; see the warning log below.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Projection, error) {
	if verr := ValidateUpdate(in); verr != nil {
		return Projection{}, verr
	}

	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return Projection{}, err
	}

	updated := applyChanges(existing, in)

	if updated.Username != existing.Username || updated.Email != existing.Email || updated.PhoneNumber != existing.PhoneNumber {
		if err := s.checkAvailable(ctx, updated.Username, updated.Email, updated.PhoneNumber, id); err != nil {
			return Projection{}, err
		}
	}

	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return Projection{}, fmt.Errorf("hash password: %w", err)
		}
		updated.PasswordHash = hash
	}

	var persisted User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		persisted, err = s.users.Update(ctx, updated)
		return err
	})
	if err != nil {
		return Projection{}, err
	}

	if persisted.PhoneNumber != existing.PhoneNumber {
		// Linked account records keep the phone they were created with.
		s.logger.Warn("user phone changed; bank and wallet mirrors retain the original number",
			slog.Int64("user_id", id),
		)
	}

	return Project(persisted), nil
}

// Delete removes the user's bank account and wallet, then the user itself,
// as one atomic unit.
func (s *Service) Delete(ctx context.Context, id int64) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.banks.DeleteByUserID(ctx, id); err != nil && !errors.Is(err, bank.ErrNotFound) {
			return err
		}
		if err := s.wallets.DeleteByUserID(ctx, id); err != nil && !errors.Is(err, wallet.ErrNotFound) {
			return err
		}
		return s.users.Delete(ctx, id)
	})
}

// GetByID returns the projection for a user identifier.
func (s *Service) GetByID(ctx context.Context, id int64) (Projection, error) {
	return s.project(s.users.FindByID(ctx, id))
}

// GetByUsername returns the projection for a username.
func (s *Service) GetByUsername(ctx context.Context, username string) (Projection, error) {
	return s.project(s.users.FindByUsername(ctx, username))
}

// GetByEmail returns the projection for an email address.
func (s *Service) GetByEmail(ctx context.Context, email string) (Projection, error) {
	return s.project(s.users.FindByEmail(ctx, email))
}

// GetByPhone returns the projection for a full phone number.
func (s *Service) GetByPhone(ctx context.Context, phone string) (Projection, error) {
	return s.project(s.users.FindByPhone(ctx, phone))
}

// GetByUsernameAndPhone returns the projection matching both keys.
func (s *Service) GetByUsernameAndPhone(ctx context.Context, username, phone string) (Projection, error) {
	return s.project(s.users.FindByUsernameAndPhone(ctx, username, phone))
}

// List returns projections for every user.
func (s *Service) List(ctx context.Context) ([]Projection, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	projections := make([]Projection, 0, len(users))
	for _, u := range users {
		projections = append(projections, Project(u))
	}
	return projections, nil
}

func (s *Service) project(u User, err error) (Projection, error) {
	if err != nil {
		return Projection{}, err
	}
	return Project(u), nil
}

// checkAvailable verifies none of the identity attributes belong to another
// user. selfID excludes the record being updated; zero excludes nothing.
func (s *Service) checkAvailable(ctx context.Context, username, email, phone string, selfID int64) error {
	checks := []struct {
		field string
		find  func() (User, error)
	}{
		{"username", func() (User, error) { return s.users.FindByUsername(ctx, username) }},
		{"email", func() (User, error) { return s.users.FindByEmail(ctx, email) }},
		{"phone_number", func() (User, error) { return s.users.FindByPhone(ctx, phone) }},
	}
	for _, c := range checks {
		other, err := c.find()
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if other.ID != selfID {
			return &DuplicateError{Field: c.field}
		}
	}
	return nil
}

// applyChanges builds the updated copy of a user, leaving unset fields as
// they were.
func applyChanges(u User, in UpdateInput) User {
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Username != "" {
		u.Username = in.Username
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.CountryCode != "" || in.PhoneNumber != "" {
		cc, national := country.Split(u.PhoneNumber)
		if in.CountryCode != "" {
			cc = in.CountryCode
		}
		if in.PhoneNumber != "" {
			national = in.PhoneNumber
		}
		u.PhoneNumber = country.Join(cc, national)
	}
	return u
}

// translateProvisionError maps dependent-record duplicates onto the identity
// attribute they mirror so a commit-time constraint reads like a pre-check
// failure.
func translateProvisionError(err error) error {
	if errors.Is(err, bank.ErrDuplicatePhone) {
		return &DuplicateError{Field: "phone_number"}
	}
	return err
}

func (s *Service) notifyWelcome(ctx context.Context, u User) {
	if s.notifier == nil {
		return
	}
	msg := notification.Message{
		Kind:        notification.KindWelcome,
		Destination: u.Email,
		Body:        fmt.Sprintf("Welcome %s, your wallet and bank account are ready.", u.Name),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn("welcome notification failed", slog.Int64("user_id", u.ID), slog.Any("error", err))
	}
}
