package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"andaman_vendor/internal/adapters/observability"
	"andaman_vendor/internal/domain"
)

// Cache stores JSON values under a fixed key prefix so several services can
// share one Redis database.
type Cache struct {
	c      *redis.Client
	prefix string
}

var _ domain.Cache = (*Cache)(nil)

func New(addr, pass string, db int, prefix string) *Cache {
	return &Cache{
		c:      redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		prefix: prefix,
	}
}

func (r *Cache) key(k string) string { return r.prefix + k }

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Close() error { return r.c.Close() }

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		observability.ObserveCache("redis", "error")
		return false, err
	}
	if err := json.Unmarshal(v, dst); err != nil {
		// A value we cannot decode is treated as a miss and dropped.
		_ = r.c.Del(ctx, r.key(key)).Err()
		observability.ObserveCache("redis", "miss")
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	observability.ObserveCache("redis", "hit")
	return true, nil
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key, err)
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, r.key(key), b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, r.key(key)).Err()
}
