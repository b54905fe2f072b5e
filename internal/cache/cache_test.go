package cache

import (
	"testing"
	"time"
)

func TestTTLGetSet(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := NewTTL[string](time.Minute, clock)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	c.Set("k", "v1")
	value, ok := c.Get("k")
	if !ok || value != "v1" {
		t.Fatalf("expected hit with v1, got %q ok=%v", value, ok)
	}

	c.Set("k", "v2")
	if value, _ = c.Get("k"); value != "v2" {
		t.Fatalf("expected overwrite to v2, got %q", value)
	}
}

func TestTTLExpiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := NewTTL[int](time.Minute, clock)

	c.Set("k", 7)
	now = now.Add(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	now = now.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after expiry")
	}

	// A fresh write after expiry serves again.
	c.Set("k", 9)
	value, ok := c.Get("k")
	if !ok || value != 9 {
		t.Fatalf("expected refreshed entry, got %d ok=%v", value, ok)
	}
}

func TestTTLDelete(t *testing.T) {
	c := NewTTL[string](time.Minute, nil)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected deleted entry to miss")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
}
