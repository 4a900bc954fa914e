package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxManager scopes a pgx transaction around a unit of work.
type PgxManager struct {
	pool *pgxpool.Pool
}

// NewPgxManager builds a transaction manager backed by the connection pool.
func NewPgxManager(pool *pgxpool.Pool) *PgxManager {
	return &PgxManager{pool: pool}
}

// WithinTx begins a transaction, exposes it to repositories via the context,
// and commits only if fn returns nil. Any error rolls the whole scope back.
func (m *PgxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if err := fn(WithTx(ctx, tx)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
