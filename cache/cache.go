package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

const (
	DefaultKey = "guest_gallery_cache"
	DefaultTTL = 5 * time.Minute

	staleSuffix = ":stale"
)

// ErrMiss is returned by a Slot when the key holds nothing.
var ErrMiss = errors.New("cache miss")

// Slot is raw byte storage under a key.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Entry is the stored payload: capture time in unix milliseconds plus the listing.
type Entry[T any] struct {
	Timestamp int64 `json:"timestamp"`
	Images    []T   `json:"images"`
}

// Cache is a single-slot, time-boxed cache of a gallery listing. Expired entries are
// moved aside and stay available to LoadStale until the next Save.
type Cache[T any] struct {
	slot Slot
	key  string
	ttl  time.Duration
	now  func() time.Time
}

type Option func(*options)

type options struct {
	key string
	ttl time.Duration
	now func() time.Time
}

func WithKey(key string) Option { return func(o *options) { o.key = key } }

func WithTTL(ttl time.Duration) Option { return func(o *options) { o.ttl = ttl } }

func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

func New[T any](slot Slot, opts ...Option) *Cache[T] {
	o := options{key: DefaultKey, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[T]{slot: slot, key: o.key, ttl: o.ttl, now: o.now}
}

// Save replaces the stored listing.
func (c *Cache[T]) Save(ctx context.Context, images []T) error {
	if images == nil {
		images = []T{}
	}
	data, err := json.Marshal(Entry[T]{Timestamp: c.now().UnixMilli(), Images: images})
	if err != nil {
		return err
	}
	if err := c.slot.Set(ctx, c.key, data); err != nil {
		return err
	}
	if err := c.slot.Delete(ctx, c.key+staleSuffix); err != nil && !errors.Is(err, ErrMiss) {
		slog.Warn("cache: failed to drop stale snapshot", "key", c.key, "error", err)
	}
	return nil
}

// Load returns the listing only while it is within the TTL. Anything else, including
// unreadable payloads, is a miss.
func (c *Cache[T]) Load(ctx context.Context) ([]T, bool) {
	raw, entry, ok := c.read(ctx, c.key)
	if !ok {
		return nil, false
	}
	if c.now().UnixMilli()-entry.Timestamp > c.ttl.Milliseconds() {
		c.retire(ctx, raw)
		return nil, false
	}
	return entry.Images, true
}

// LoadStale returns the last snapshot regardless of its age.
func (c *Cache[T]) LoadStale(ctx context.Context) ([]T, bool) {
	if _, entry, ok := c.read(ctx, c.key); ok {
		return entry.Images, true
	}
	if _, entry, ok := c.read(ctx, c.key+staleSuffix); ok {
		return entry.Images, true
	}
	return nil, false
}

// Invalidate drops the fresh entry so the next Load goes to the network.
func (c *Cache[T]) Invalidate(ctx context.Context) error {
	raw, _, ok := c.read(ctx, c.key)
	if !ok {
		return nil
	}
	c.retire(ctx, raw)
	return nil
}

func (c *Cache[T]) read(ctx context.Context, key string) ([]byte, Entry[T], bool) {
	var entry Entry[T]
	raw, err := c.slot.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			slog.Warn("cache: read failed", "key", key, "error", err)
		}
		return nil, entry, false
	}
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Timestamp == 0 {
		slog.Warn("cache: dropping malformed entry", "key", key, "error", err)
		_ = c.slot.Delete(ctx, key)
		return nil, entry, false
	}
	if entry.Images == nil {
		entry.Images = []T{}
	}
	return raw, entry, true
}

func (c *Cache[T]) retire(ctx context.Context, raw []byte) {
	if err := c.slot.Set(ctx, c.key+staleSuffix, raw); err != nil {
		slog.Warn("cache: failed to keep stale snapshot", "key", c.key, "error", err)
	}
	if err := c.slot.Delete(ctx, c.key); err != nil && !errors.Is(err, ErrMiss) {
		slog.Warn("cache: failed to evict entry", "key", c.key, "error", err)
	}
}
