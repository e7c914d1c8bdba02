package kvstate

import (
	"context"
	"testing"

	"github.com/rmedina/stockroom-backend/pkg/config"
)

func TestMemorySlotLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, ok, err := store.Get(ctx, "inventoryUser"); err != nil || ok {
		t.Fatalf("expected empty slot, got ok=%v err=%v", ok, err)
	}

	if err := store.Put(ctx, "inventoryUser", []byte(`{"id":"u1"}`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	value, ok, err := store.Get(ctx, "inventoryUser")
	if err != nil || !ok {
		t.Fatalf("expected stored slot, got ok=%v err=%v", ok, err)
	}
	if string(value) != `{"id":"u1"}` {
		t.Fatalf("unexpected payload %q", value)
	}

	// Whole-value replace.
	if err := store.Put(ctx, "inventoryUser", []byte(`{"id":"u2"}`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	value, _, _ = store.Get(ctx, "inventoryUser")
	if string(value) != `{"id":"u2"}` {
		t.Fatalf("expected replaced payload, got %q", value)
	}

	if err := store.Delete(ctx, "inventoryUser"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "inventoryUser"); ok {
		t.Fatalf("expected slot gone after delete")
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	payload := []byte("original")
	if err := store.Put(ctx, "k", payload); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	payload[0] = 'X'

	value, _, _ := store.Get(ctx, "k")
	if string(value) != "original" {
		t.Fatalf("store must not alias caller buffers, got %q", value)
	}
	value[0] = 'Y'
	again, _, _ := store.Get(ctx, "k")
	if string(again) != "original" {
		t.Fatalf("returned buffer must not alias stored value, got %q", again)
	}
}

func TestGormSQLiteSlotLifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := OpenGorm(ctx, config.StateConfig{
		Driver: config.StateDriverSQLite,
		DSN:    "file::memory:?cache=shared",
	})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer store.Close()

	if err := store.Put(ctx, "inventoryCart", []byte(`[]`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := store.Put(ctx, "inventoryCart", []byte(`[{"productId":"p1","quantity":1}]`)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	value, ok, err := store.Get(ctx, "inventoryCart")
	if err != nil || !ok {
		t.Fatalf("expected stored slot, got ok=%v err=%v", ok, err)
	}
	if string(value) != `[{"productId":"p1","quantity":1}]` {
		t.Fatalf("unexpected payload %q", value)
	}

	if err := store.Delete(ctx, "inventoryCart"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "inventoryCart"); ok {
		t.Fatalf("expected slot gone after delete")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StateConfig{Driver: "etcd"}, config.RedisConfig{})
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
