package cache

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// DefaultGenerationKey holds the save counter next to the listing entry.
const DefaultGenerationKey = DefaultKey + ":generation"

// Generation counts writes to the data behind a cache. A reader that saw the counter
// move while it was fetching must not store what it fetched.
type Generation interface {
	Current(ctx context.Context) (int64, error)
	Bump(ctx context.Context) (int64, error)
}

// LocalGeneration is a process-wide counter.
type LocalGeneration struct {
	n atomic.Int64
}

func (g *LocalGeneration) Current(context.Context) (int64, error) { return g.n.Load(), nil }

func (g *LocalGeneration) Bump(context.Context) (int64, error) { return g.n.Add(1), nil }

// RedisGeneration shares the counter between instances with INCR.
type RedisGeneration struct {
	client *redis.Client
	key    string
}

func NewRedisGeneration(client *redis.Client, key string) *RedisGeneration {
	return &RedisGeneration{client: client, key: key}
}

func (g *RedisGeneration) Current(ctx context.Context) (int64, error) {
	n, err := g.client.Get(ctx, g.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (g *RedisGeneration) Bump(ctx context.Context) (int64, error) {
	return g.client.Incr(ctx, g.key).Result()
}
