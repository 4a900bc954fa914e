package bank

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ewallet/ewallet/internal/storage"
)

// ErrDuplicatePhone reports a collision on the mirrored phone number.
var ErrDuplicatePhone = errors.New("bank account phone number already in use")

// PostgresRepository stores bank accounts in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed bank account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a bank account and returns it with store-assigned fields.
func (r *PostgresRepository) Create(ctx context.Context, account Account) (Account, error) {
	q := storage.QuerierFrom(ctx, r.db)
	row := q.QueryRow(ctx, `INSERT INTO bank_accounts (account_number, phone_number, balance, currency, user_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`,
		account.AccountNumber, account.PhoneNumber, account.Balance, account.Currency, account.UserID)
	if err := row.Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		return Account{}, translateError(err)
	}
	account.CreatedAt = account.CreatedAt.UTC()
	account.UpdatedAt = account.UpdatedAt.UTC()
	return account, nil
}

// FindByUserID fetches the account owned by the given user.
func (r *PostgresRepository) FindByUserID(ctx context.Context, userID int64) (Account, error) {
	q := storage.QuerierFrom(ctx, r.db)
	row := q.QueryRow(ctx, `SELECT id, account_number, phone_number, balance, currency, user_id, created_at, updated_at
        FROM bank_accounts WHERE user_id = $1`, userID)
	var a Account
	if err := row.Scan(&a.ID, &a.AccountNumber, &a.PhoneNumber, &a.Balance, &a.Currency, &a.UserID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

// DeleteByUserID removes the account owned by the given user.
func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	q := storage.QuerierFrom(ctx, r.db)
	cmd, err := q.Exec(ctx, `DELETE FROM bank_accounts WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "account_number") {
			return ErrDuplicateAccountNumber
		}
		if strings.Contains(pgErr.ConstraintName, "phone") {
			return ErrDuplicatePhone
		}
	}
	return err
}
