// Package kv wraps the Redis client behind the narrow command surface the
// rest of the system uses: plain keys with optional expiry, hashes for
// per-tournament roll maps, and prefix scans.
package kv

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rxriddqd/iddqd/app/shared/attr"
)

// ErrNotFound is returned when a key or hash field does not exist.
var ErrNotFound = errors.New("kv: key not found")

// Options configures the client connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

// Client is the process-wide key-value store handle. It is safe for
// concurrent use; the underlying pool handles per-call connections.
type Client struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// New constructs a Client. The connection is established lazily; call Ping
// during startup to fail fast on a bad address.
func New(opts Options, logger *slog.Logger) *Client {
	ro := &redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}
	if opts.TLS {
		ro.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return &Client{
		rdb:    redis.NewClient(ro),
		logger: logger,
	}
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("kv ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Get returns the value at key, or ErrNotFound.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", mapErr("get", key, err)
	}
	return val, nil
}

// Set stores value at key. A zero ttl means no expiry.
func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("kv del %q: %w", key, err)
	}
	return nil
}

// Exists reports whether key is present.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("kv exists %q: %w", key, err)
	}
	return n > 0, nil
}

// HSet stores field=value in the hash at key.
func (c *Client) HSet(ctx context.Context, key, field, value string) error {
	if err := c.rdb.HSet(ctx, key, field, value).Err(); err != nil {
		return fmt.Errorf("kv hset %q %q: %w", key, field, err)
	}
	return nil
}

// HGet returns the value of field in the hash at key, or ErrNotFound.
func (c *Client) HGet(ctx context.Context, key, field string) (string, error) {
	val, err := c.rdb.HGet(ctx, key, field).Result()
	if err != nil {
		return "", mapErr("hget", key, err)
	}
	return val, nil
}

// HGetAll returns every field of the hash at key. An absent key yields an
// empty map, matching the wire protocol.
func (c *Client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	vals, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("kv hgetall %q: %w", key, err)
	}
	return vals, nil
}

// HDel removes fields from the hash at key.
func (c *Client) HDel(ctx context.Context, key string, fields ...string) error {
	if err := c.rdb.HDel(ctx, key, fields...).Err(); err != nil {
		return fmt.Errorf("kv hdel %q: %w", key, err)
	}
	return nil
}

// Keys returns all keys matching pattern. Pattern scans are acceptable here:
// the keyspace is small and partitioned per tournament.
func (c *Client) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("kv keys %q: %w", pattern, err)
	}
	return keys, nil
}

// LogConnectionState emits a log line describing connectivity. Used by the
// health endpoint.
func (c *Client) LogConnectionState(ctx context.Context) {
	if err := c.Ping(ctx); err != nil {
		c.logger.WarnContext(ctx, "Key-value store unreachable", attr.Error(err))
		return
	}
	c.logger.DebugContext(ctx, "Key-value store reachable")
}

func mapErr(op, key string, err error) error {
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	return fmt.Errorf("kv %s %q: %w", op, key, err)
}
