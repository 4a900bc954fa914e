package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

// recordingTx counts nested begin/commit/rollback calls. The embedded
// interface covers the pgx.Tx methods the tests never touch.
type recordingTx struct {
	pgx.Tx
	begins    *int
	commits   *int
	rollbacks *int
}

func (t *recordingTx) Begin(ctx context.Context) (pgx.Tx, error) {
	*t.begins++
	return &recordingTx{begins: t.begins, commits: t.commits, rollbacks: t.rollbacks}, nil
}

func (t *recordingTx) Commit(ctx context.Context) error {
	*t.commits++
	return nil
}

func (t *recordingTx) Rollback(ctx context.Context) error {
	*t.rollbacks++
	return nil
}

func newRecordingTx() (*recordingTx, *int, *int, *int) {
	begins, commits, rollbacks := new(int), new(int), new(int)
	return &recordingTx{begins: begins, commits: commits, rollbacks: rollbacks}, begins, commits, rollbacks
}

func TestWithSavepointOutsideTransaction(t *testing.T) {
	called := false
	err := WithSavepoint(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("fn was not invoked")
	}
}

func TestWithSavepointCommitsOnSuccess(t *testing.T) {
	tx, begins, commits, rollbacks := newRecordingTx()
	ctx := WithTx(context.Background(), tx)

	err := WithSavepoint(ctx, func(ctx context.Context) error {
		nested, ok := ctx.Value(txKey{}).(pgx.Tx)
		if !ok || nested == pgx.Tx(tx) {
			t.Fatal("fn must run through the nested transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *begins != 1 || *commits != 1 || *rollbacks != 0 {
		t.Fatalf("expected 1 begin, 1 commit, 0 rollbacks; got %d/%d/%d", *begins, *commits, *rollbacks)
	}
}

func TestWithSavepointRollsBackFailedAttempt(t *testing.T) {
	tx, begins, commits, rollbacks := newRecordingTx()
	ctx := WithTx(context.Background(), tx)

	boom := errors.New("duplicate key")
	err := WithSavepoint(ctx, func(ctx context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error back, got %v", err)
	}
	if *begins != 1 || *commits != 0 || *rollbacks != 1 {
		t.Fatalf("expected 1 begin, 0 commits, 1 rollback; got %d/%d/%d", *begins, *commits, *rollbacks)
	}
}

// A retry loop issues one savepoint per attempt; failed attempts roll back
// so the enclosing transaction stays usable for the next try.
func TestWithSavepointSupportsRepeatedAttempts(t *testing.T) {
	tx, begins, commits, rollbacks := newRecordingTx()
	ctx := WithTx(context.Background(), tx)

	dup := errors.New("duplicate key")
	attempt := 0
	var err error
	for i := 0; i < 3; i++ {
		err = WithSavepoint(ctx, func(ctx context.Context) error {
			attempt++
			if attempt < 3 {
				return dup
			}
			return nil
		})
		if err == nil {
			break
		}
	}
	if err != nil {
		t.Fatalf("expected third attempt to succeed, got %v", err)
	}
	if *begins != 3 || *rollbacks != 2 || *commits != 1 {
		t.Fatalf("expected 3 begins, 2 rollbacks, 1 commit; got %d/%d/%d", *begins, *rollbacks, *commits)
	}
}
