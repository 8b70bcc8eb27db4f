package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/edgeboard/internal/domain/table"
)

const defaultKeyPrefix = "edgeboard:dataset:"

// RedisClient is the part of the go-redis client the cache uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Redis stores tables as JSON values with a TTL.
type Redis struct {
	client RedisClient
	prefix string
}

// NewRedisClient dials addr and checks it with a ping.
func NewRedisClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// NewRedis wraps an existing client.
func NewRedis(client RedisClient, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Backend implements Cache.
func (r *Redis) Backend() string { return "redis" }

// Get implements Cache.
func (r *Redis) Get(ctx context.Context, id string) (*table.Table, error) {
	if r.client == nil {
		return nil, ErrClosed
	}
	b, err := r.client.Get(ctx, r.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	var t table.Table
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("redis decode %s: %w", id, err)
	}
	return &t, nil
}

// Set implements Cache.
func (r *Redis) Set(ctx context.Context, id string, t *table.Table, ttl time.Duration) error {
	if r.client == nil {
		return ErrClosed
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", id, err)
	}
	if err := r.client.Set(ctx, r.prefix+id, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", id, err)
	}
	return nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	if r.client == nil {
		return ErrClosed
	}
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
