package kv

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, "a", []byte("1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.Get(ctx, "a")
	if err != nil || string(got) != "1" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected key to be gone, got %v", err)
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }

	if ok, _ := s.SetNX(ctx, "lock", []byte("x"), time.Second); !ok {
		t.Fatal("first SetNX should succeed")
	}
	if ok, _ := s.SetNX(ctx, "lock", []byte("y"), time.Second); ok {
		t.Fatal("second SetNX should fail while the key is live")
	}

	now = now.Add(2 * time.Second)
	if ok, _ := s.SetNX(ctx, "lock", []byte("z"), time.Second); !ok {
		t.Error("SetNX should succeed once the key expired")
	}
}

func TestLock(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	unlock, err := Lock(ctx, s, "renders", time.Minute)
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	if _, err := Lock(ctx, s, "renders", time.Minute); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	unlock()

	unlock, err = Lock(ctx, s, "renders", time.Minute)
	if err != nil {
		t.Fatalf("Lock after release failed: %v", err)
	}
	unlock()
}

func TestMemoryStore_DeleteIfValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Set(ctx, "k", []byte("mine"), 0)

	if ok, err := s.DeleteIfValue(ctx, "k", []byte("theirs")); ok || err != nil {
		t.Fatalf("DeleteIfValue with another value = %v, %v", ok, err)
	}
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Fatalf("key should survive a mismatched delete: %v", err)
	}
	if ok, err := s.DeleteIfValue(ctx, "k", []byte("mine")); !ok || err != nil {
		t.Fatalf("DeleteIfValue with own value = %v, %v", ok, err)
	}
	if ok, _ := s.DeleteIfValue(ctx, "k", []byte("mine")); ok {
		t.Error("deleting a missing key should report false")
	}
}

func TestLock_ExpiredHolderKeepsNewLock(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }

	stale, err := Lock(ctx, s, "renders", time.Second)
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	now = now.Add(2 * time.Second)
	fresh, err := Lock(ctx, s, "renders", time.Minute)
	if err != nil {
		t.Fatalf("Lock after expiry failed: %v", err)
	}

	stale()
	if _, err := Lock(ctx, s, "renders", time.Minute); !errors.Is(err, ErrLocked) {
		t.Fatalf("stale release dropped the new lock: got %v", err)
	}

	fresh()
	unlock, err := Lock(ctx, s, "renders", time.Minute)
	if err != nil {
		t.Fatalf("Lock after release failed: %v", err)
	}
	unlock()
}
