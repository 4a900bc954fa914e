package wallet

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ewallet/ewallet/internal/storage"
)

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed wallet repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a wallet and returns it with store-assigned fields.
func (r *PostgresRepository) Create(ctx context.Context, wallet Wallet) (Wallet, error) {
	q := storage.QuerierFrom(ctx, r.db)
	row := q.QueryRow(ctx, `INSERT INTO wallets (phone_number, balance, currency, user_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`,
		wallet.PhoneNumber, wallet.Balance, wallet.Currency, wallet.UserID)
	if err := row.Scan(&wallet.ID, &wallet.CreatedAt, &wallet.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "user_id") {
			return Wallet{}, ErrDuplicateWallet
		}
		return Wallet{}, err
	}
	wallet.CreatedAt = wallet.CreatedAt.UTC()
	wallet.UpdatedAt = wallet.UpdatedAt.UTC()
	return wallet, nil
}

// FindByUserID fetches the wallet owned by the given user.
func (r *PostgresRepository) FindByUserID(ctx context.Context, userID int64) (Wallet, error) {
	q := storage.QuerierFrom(ctx, r.db)
	row := q.QueryRow(ctx, `SELECT id, phone_number, balance, currency, user_id, created_at, updated_at
        FROM wallets WHERE user_id = $1`, userID)
	var w Wallet
	if err := row.Scan(&w.ID, &w.PhoneNumber, &w.Balance, &w.Currency, &w.UserID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}
	w.CreatedAt = w.CreatedAt.UTC()
	w.UpdatedAt = w.UpdatedAt.UTC()
	return w, nil
}

// DeleteByUserID removes the wallet owned by the given user.
func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	q := storage.QuerierFrom(ctx, r.db)
	cmd, err := q.Exec(ctx, `DELETE FROM wallets WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
