package cache

import (
	"context"
	"reflect"
	"testing"
	"time"
)

type listing struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache(t *testing.T) (*Cache[listing], *clock, *MemorySlot) {
	t.Helper()
	c := &clock{t: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	slot := NewMemorySlot()
	return New[listing](slot, WithClock(c.now)), c, slot
}

func TestCache_RoundTripWithinWindow(t *testing.T) {
	cache, clk, _ := newTestCache(t)
	ctx := context.Background()
	images := []listing{{URL: "https://x/a.jpg", Name: "Alex"}, {URL: "https://x/b.jpg", Name: "Bo"}}

	if err := cache.Save(ctx, images); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	clk.t = clk.t.Add(DefaultTTL)

	got, ok := cache.Load(ctx)
	if !ok {
		t.Fatal("expected hit at the edge of the window")
	}
	if !reflect.DeepEqual(got, images) {
		t.Errorf("expected %v, got %v", images, got)
	}
}

func TestCache_ExpiredIsAbsentButStaleSurvives(t *testing.T) {
	cache, clk, slot := newTestCache(t)
	ctx := context.Background()
	images := []listing{{URL: "https://x/a.jpg"}}

	if err := cache.Save(ctx, images); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	clk.t = clk.t.Add(DefaultTTL + time.Millisecond)

	if _, ok := cache.Load(ctx); ok {
		t.Fatal("expected miss after the window")
	}
	if _, err := slot.Get(ctx, DefaultKey); err != ErrMiss {
		t.Errorf("expected fresh slot to be evicted, got %v", err)
	}

	stale, ok := cache.LoadStale(ctx)
	if !ok || !reflect.DeepEqual(stale, images) {
		t.Fatalf("expected stale snapshot %v, got %v (%v)", images, stale, ok)
	}
}

func TestCache_SaveOverwritesAndClearsStale(t *testing.T) {
	cache, clk, _ := newTestCache(t)
	ctx := context.Background()

	_ = cache.Save(ctx, []listing{{URL: "old"}})
	clk.t = clk.t.Add(time.Hour)
	cache.Load(ctx)

	fresh := []listing{{URL: "new"}}
	if err := cache.Save(ctx, fresh); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, ok := cache.Load(ctx)
	if !ok || !reflect.DeepEqual(got, fresh) {
		t.Fatalf("expected %v, got %v", fresh, got)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate error: %v", err)
	}
	stale, ok := cache.LoadStale(ctx)
	if !ok || stale[0].URL != "new" {
		t.Errorf("expected the invalidated listing as stale snapshot, got %v", stale)
	}
}

func TestCache_MalformedPayloadIsMiss(t *testing.T) {
	cache, _, slot := newTestCache(t)
	ctx := context.Background()

	for _, payload := range []string{"not json", `{"images": []}`, `[1,2,3]`} {
		_ = slot.Set(ctx, DefaultKey, []byte(payload))
		if _, ok := cache.Load(ctx); ok {
			t.Errorf("expected miss for %q", payload)
		}
		if _, ok := cache.LoadStale(ctx); ok {
			t.Errorf("expected stale miss for %q", payload)
		}
	}
}

func TestCache_EmptyListingIsAHit(t *testing.T) {
	cache, _, _ := newTestCache(t)
	ctx := context.Background()
	if err := cache.Save(ctx, nil); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, ok := cache.Load(ctx)
	if !ok {
		t.Fatal("expected hit for an empty listing")
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFileSlot(t *testing.T) {
	slot, err := NewFileSlot(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSlot error: %v", err)
	}
	ctx := context.Background()

	if _, err := slot.Get(ctx, "a:b"); err != ErrMiss {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
	if err := slot.Set(ctx, "a:b", []byte("v1")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := slot.Set(ctx, "a:b", []byte("v2")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := slot.Get(ctx, "a:b")
	if err != nil || string(got) != "v2" {
		t.Fatalf("expected v2, got %q (%v)", got, err)
	}
	if err := slot.Delete(ctx, "a:b"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := slot.Delete(ctx, "a:b"); err != nil {
		t.Fatalf("second Delete should be a no-op, got %v", err)
	}
}
