package bank

import (
	"context"
	"errors"
	"testing"
)

type stubDirectory map[int64]bool

func (d stubDirectory) Exists(_ context.Context, id int64) (bool, error) {
	return d[id], nil
}

func TestServiceGetByUserID(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, stubDirectory{1: true})
	ctx := context.Background()

	account, err := repo.Create(ctx, Account{
		AccountNumber: NewAccountNumber(),
		PhoneNumber:   "+919876543210",
		Balance:       10000,
		Currency:      "INR",
		UserID:        1,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	got, err := svc.GetByUserID(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AccountNumber != account.AccountNumber {
		t.Fatalf("expected %s, got %s", account.AccountNumber, got.AccountNumber)
	}

	if _, err := svc.GetByUserID(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user must be ErrNotFound, got %v", err)
	}
}

func TestServiceDeleteByUserID(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, stubDirectory{1: true})
	ctx := context.Background()

	if _, err := repo.Create(ctx, Account{AccountNumber: NewAccountNumber(), UserID: 1}); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	if err := svc.DeleteByUserID(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByUserID(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatal("account must be gone")
	}
	if err := svc.DeleteByUserID(ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user must be ErrNotFound, got %v", err)
	}
}

func TestMemoryRepositoryRejectsDuplicateAccountNumber(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, Account{AccountNumber: "ACCT-aaaaaaaaaaaa", UserID: 1}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := repo.Create(ctx, Account{AccountNumber: "ACCT-aaaaaaaaaaaa", UserID: 2})
	if !errors.Is(err, ErrDuplicateAccountNumber) {
		t.Fatalf("expected ErrDuplicateAccountNumber, got %v", err)
	}
}
