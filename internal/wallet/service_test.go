package wallet

import (
	"context"
	"errors"
	"testing"
)

type stubDirectory map[int64]bool

func (d stubDirectory) Exists(_ context.Context, id int64) (bool, error) {
	return d[id], nil
}

func TestServiceGetAndDeleteByUserID(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, stubDirectory{1: true})
	ctx := context.Background()

	if _, err := repo.Create(ctx, Wallet{PhoneNumber: "+919876543210", Currency: "INR", UserID: 1}); err != nil {
		t.Fatalf("seed wallet: %v", err)
	}

	w, err := svc.GetByUserID(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if w.Balance != 0 {
		t.Fatalf("seeded wallet balance must be zero, got %d", w.Balance)
	}

	if _, err := svc.GetByUserID(ctx, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user must be ErrNotFound, got %v", err)
	}

	if err := svc.DeleteByUserID(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByUserID(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatal("wallet must be gone")
	}
}

func TestMemoryRepositoryOneWalletPerUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, Wallet{UserID: 1}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := repo.Create(ctx, Wallet{UserID: 1}); !errors.Is(err, ErrDuplicateWallet) {
		t.Fatalf("expected ErrDuplicateWallet, got %v", err)
	}
}
