package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Guarded requests wait on Exists, so a dead server must not stall them.
const (
	dialTimeout    = time.Second
	commandTimeout = 250 * time.Millisecond
)

// Client holds expiring presence flags in redis. Every command fails safe:
// an unreachable server reads as "absent" and writes are dropped with a warning.
type Client struct {
	rdb *redis.Client
}

// New creates a client for addr. It does not connect until first use.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  dialTimeout,
		ReadTimeout:  commandTimeout,
		WriteTimeout: commandTimeout,
	})}
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return errors.New("redis client not configured")
	}
	return c.rdb.Ping(ctx).Err()
}

// Flag sets key for ttl. Non-positive ttls are ignored.
func (c *Client) Flag(ctx context.Context, key string, ttl time.Duration) error {
	if c == nil || c.rdb == nil || ttl <= 0 {
		return nil
	}
	if err := c.rdb.Set(ctx, key, 1, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Dur("ttl", ttl).Msg("redis flag failed")
	}
	return nil
}

// Exists reports whether key is flagged. Lookup failures read as absent.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis exists failed")
		return false, nil
	}
	return n > 0, nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
