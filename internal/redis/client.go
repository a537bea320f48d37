// Redis client wrapper
//
// Manages Redis connections:
// - Connection pooling
// - Command execution
// - Error handling
// - Reconnect logic

package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/streamforge/hlsplaylist/internal/config"
)

// NewClient builds a pooled go-redis client from cfg. The returned client
// dials lazily on first command, so a misconfigured Addr only surfaces once
// something tries to use it (or via Ping).
func NewClient(cfg *config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
}

// Ping verifies the client can reach the server, wrapping go-redis's error
// with enough context to show up usefully in startup logs.
func Ping(ctx context.Context, client *goredis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
