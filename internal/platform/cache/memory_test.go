package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheBasicLifecycle(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(Config{
		TTL:    time.Second,
		Memory: &MemoryConfig{GCInterval: 10 * time.Millisecond},
	})
	t.Cleanup(func() {
		_ = c.Close(ctx)
	})

	if err := c.Set(ctx, "render:post:1", "<p>hello</p>", 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	value, ok, err := c.Get(ctx, "render:post:1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || value != "<p>hello</p>" {
		t.Fatalf("unexpected value: %q ok=%v", value, ok)
	}

	if err := c.Delete(ctx, "render:post:1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "render:post:1"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestMemoryCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(Config{
		TTL:    50 * time.Millisecond,
		Memory: &MemoryConfig{GCInterval: 5 * time.Millisecond},
	})
	t.Cleanup(func() {
		_ = c.Close(ctx)
	})

	if err := c.Set(ctx, "render:post:2", "stale", 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "render:post:2"); ok {
		t.Fatalf("expected miss after expiration")
	}

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats["active"].(int) != 0 {
		t.Fatalf("expected active count to be zero, got %v", stats["active"])
	}
}

func TestMemoryCacheDeletePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(Config{TTL: time.Minute})
	t.Cleanup(func() {
		_ = c.Close(ctx)
	})

	entries := map[string]string{
		"markdown:post:1:100":    "<p>a</p>",
		"markdown:post:2:200":    "<p>b</p>",
		"markdown:project:1:300": "<p>c</p>",
	}
	for key, value := range entries {
		if err := c.Set(ctx, key, value, 0); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
	}

	if err := c.DeletePrefix(ctx, "markdown:post:"); err != nil {
		t.Fatalf("DeletePrefix returned error: %v", err)
	}

	if _, ok, _ := c.Get(ctx, "markdown:post:1:100"); ok {
		t.Fatalf("expected post entry 1 to be gone")
	}
	if _, ok, _ := c.Get(ctx, "markdown:post:2:200"); ok {
		t.Fatalf("expected post entry 2 to be gone")
	}
	if _, ok, _ := c.Get(ctx, "markdown:project:1:300"); !ok {
		t.Fatalf("expected project entry to survive")
	}
}
