package store

import (
	"context"
	"testing"
)

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	if _, ok, _ := kv.Get(ctx, "p1", "settings"); ok {
		t.Fatalf("fresh store reported a value")
	}

	if err := kv.Set(ctx, "p1", "settings", []byte("a")); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "p1", "settings")
	if err != nil || !ok || string(v) != "a" {
		t.Fatalf("get = %q %v %v", v, ok, err)
	}

	// Scopes are isolated.
	if _, ok, _ := kv.Get(ctx, "p2", "settings"); ok {
		t.Fatalf("scope leak")
	}

	if err := kv.Remove(ctx, "p1", "settings"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "p1", "settings"); ok {
		t.Fatalf("value survived remove")
	}
	// Removing a missing key is not an error.
	if err := kv.Remove(ctx, "p1", "settings"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
}

func TestMemoryClaim(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	_ = kv.Set(ctx, "anon", "a", []byte("anon-a"))
	_ = kv.Set(ctx, "anon", "b", []byte("anon-b"))
	_ = kv.Set(ctx, "user", "b", []byte("user-b"))

	if err := kv.Claim(ctx, "anon", "user"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	v, ok, _ := kv.Get(ctx, "user", "a")
	if !ok || string(v) != "anon-a" {
		t.Errorf("claimed a = %q %v", v, ok)
	}
	// Existing destination values win.
	v, _, _ = kv.Get(ctx, "user", "b")
	if string(v) != "user-b" {
		t.Errorf("destination b overwritten: %q", v)
	}
	if _, ok, _ := kv.Get(ctx, "anon", "a"); ok {
		t.Errorf("source scope not emptied")
	}
}
