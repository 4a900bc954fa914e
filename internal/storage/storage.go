package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so the same repository code runs
// against the pool or inside an open transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// WithTx stashes an open transaction in the context so repositories called
// within a Manager scope write through it.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// QuerierFrom returns the in-flight transaction if the context carries one,
// otherwise the pool.
func QuerierFrom(ctx context.Context, pool *pgxpool.Pool) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// WithSavepoint runs fn under a savepoint when the context carries an open
// transaction. Postgres aborts the whole transaction on the first failed
// statement, so a retryable failure inside a Manager scope must be rolled
// back to a savepoint before anything else runs through the same
// transaction. pgx nests via Begin on the transaction, which issues
// SAVEPOINT/RELEASE under the hood. Outside a transaction fn runs as-is.
func WithSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return fn(ctx)
	}
	nested, err := tx.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(WithTx(ctx, nested)); err != nil {
		_ = nested.Rollback(ctx)
		return err
	}
	return nested.Commit(ctx)
}

// Manager runs a function inside a single atomic scope: every repository
// write performed through the scoped context commits together or not at all.
type Manager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
