// Redis-backed cache implementation
//
// Distributed cache for multi-instance deployments:
// - JSON-encoded value storage
// - Native TTL via SET EX
// - Prefix-scoped clear (safe to share a Redis instance with other data)
// - Local hit/miss counters (Redis itself doesn't expose these
//   per-namespace without extra round trips); evictions and expirations
//   are not counted and always report 0

package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a Redis-backed cache instance.
type RedisOptions struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	KeyPrefix   string // isolates this cache's keys from others on the same Redis instance
}

// redisCache is a Cache backed by a shared Redis instance. Values are
// JSON-encoded since redis.Client only stores strings/bytes, not
// interface{}; callers that round-trip non-JSON-able values (e.g. an
// io.Reader) should not use this backend.
type redisCache struct {
	client *redis.Client
	prefix string
	ctx    context.Context

	hits, misses, evictions, expirations uint64
}

// NewRedis creates a new Redis-backed cache.
func NewRedis(opts RedisOptions) Cache {
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})

	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "hlsplaylist:cache:"
	}

	return &redisCache{client: client, prefix: prefix, ctx: context.Background()}
}

func (r *redisCache) fullKey(key Key) string {
	return r.prefix + string(key)
}

func (r *redisCache) Get(key Key) (interface{}, bool) {
	raw, err := r.client.Get(r.ctx, r.fullKey(key)).Bytes()
	if err != nil {
		atomic.AddUint64(&r.misses, 1)
		return nil, false
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		atomic.AddUint64(&r.misses, 1)
		return nil, false
	}

	atomic.AddUint64(&r.hits, 1)
	return value, true
}

func (r *redisCache) Set(key Key, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	r.client.Set(r.ctx, r.fullKey(key), raw, ttl)
}

func (r *redisCache) Delete(key Key) {
	r.client.Del(r.ctx, r.fullKey(key))
}

// Clear removes every key under this cache's prefix, scanning rather than
// issuing FLUSHDB so other data sharing the Redis instance is untouched.
func (r *redisCache) Clear() {
	iter := r.client.Scan(r.ctx, 0, r.prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(r.ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		r.client.Del(r.ctx, keys...)
	}
}

// Size counts keys under this cache's prefix via SCAN; this is an O(n)
// approximation suitable for admin/debug endpoints, not the hot path.
func (r *redisCache) Size() int {
	iter := r.client.Scan(r.ctx, 0, r.prefix+"*", 0).Iterator()
	count := 0
	for iter.Next(r.ctx) {
		count++
	}
	return count
}

func (r *redisCache) Stats() Stats {
	return Stats{
		Hits:        atomic.LoadUint64(&r.hits),
		Misses:      atomic.LoadUint64(&r.misses),
		Size:        r.Size(),
		Evictions:   atomic.LoadUint64(&r.evictions),
		Expirations: atomic.LoadUint64(&r.expirations),
	}
}

// Ping checks connectivity to the Redis server.
func (r *redisCache) Ping() error {
	return r.client.Ping(r.ctx).Err()
}
