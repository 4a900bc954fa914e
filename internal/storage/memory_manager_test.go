package storage

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	items map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]int)}
}

func (s *fakeStore) Snapshot() any {
	copied := make(map[string]int, len(s.items))
	for k, v := range s.items {
		copied[k] = v
	}
	return copied
}

func (s *fakeStore) Restore(snapshot any) {
	if m, ok := snapshot.(map[string]int); ok {
		s.items = m
	}
}

func TestMemoryManagerCommits(t *testing.T) {
	store := newFakeStore()
	mgr := NewMemoryManager(store)

	err := mgr.WithinTx(context.Background(), func(context.Context) error {
		store.items["a"] = 1
		return nil
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	if store.items["a"] != 1 {
		t.Fatal("committed write lost")
	}
}

func TestMemoryManagerRollsBackAllStores(t *testing.T) {
	first := newFakeStore()
	second := newFakeStore()
	first.items["keep"] = 7
	mgr := NewMemoryManager(first, second)

	boom := errors.New("boom")
	err := mgr.WithinTx(context.Background(), func(context.Context) error {
		first.items["a"] = 1
		second.items["b"] = 2
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, ok := first.items["a"]; ok {
		t.Fatal("first store not rolled back")
	}
	if _, ok := second.items["b"]; ok {
		t.Fatal("second store not rolled back")
	}
	if first.items["keep"] != 7 {
		t.Fatal("pre-existing state lost on rollback")
	}
}
