package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pkessler/flowgrid/pkg/flow/layout"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "k1")
	if err != nil || hit {
		t.Fatalf("Get before Set = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k1", []byte("layout bytes"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k1")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if !bytes.Equal(data, []byte("layout bytes")) {
		t.Errorf("Get returned %q", data)
	}

	if err := c.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, hit, _ = c.Get(ctx, "k1")
	if hit {
		t.Error("Get after Delete should miss")
	}

	// Deleting an absent key is not an error
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete absent: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "short", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, hit, err := c.Get(ctx, "short")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("expired entry should miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Any layout knob must change the key
	lk1 := k.LayoutKey("hash123", layout.Config{NodeWidth: 160})
	lk2 := k.LayoutKey("hash123", layout.Config{NodeWidth: 200})
	if lk1 == lk2 {
		t.Error("different layout configs should produce different keys")
	}

	// A different graph must change the key
	lk3 := k.LayoutKey("hash456", layout.Config{NodeWidth: 160})
	if lk1 == lk3 {
		t.Error("different graph hashes should produce different keys")
	}

	// Same inputs must reproduce the key
	if lk1 != k.LayoutKey("hash123", layout.Config{NodeWidth: 160}) {
		t.Error("LayoutKey should be deterministic")
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("different artifact formats should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:42:")

	key := scoped.LayoutKey("hash", layout.Config{})
	if len(key) < 10 || key[:10] != "tenant:42:" {
		t.Errorf("scoped key should be prefixed: %s", key)
	}
	if key[10:] != inner.LayoutKey("hash", layout.Config{}) {
		t.Error("scoped key should wrap the inner derivation")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "p:")
	key := scoped.ArtifactKey("hash", ArtifactKeyOpts{Format: "dot"})
	want := "p:" + NewDefaultKeyer().ArtifactKey("hash", ArtifactKeyOpts{Format: "dot"})
	if key != want {
		t.Errorf("key = %s, want %s", key, want)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	base := errors.New("connection refused")
	err := Retryable(base)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != base.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(base) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	fatal := errors.New("bad input")
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return fatal
	})
	if err != fatal {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("timeout"))
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("timeout"))
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
