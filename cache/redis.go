package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 2 * time.Second

// RedisInvalidator implements Invalidator on a Redis key space using
// SCAN + DEL so large key sets never block the server.
type RedisInvalidator struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Invalidator = (*RedisInvalidator)(nil)

// RedisOption configures a RedisInvalidator.
type RedisOption func(*redis.Options)

// WithPassword sets the Redis AUTH password.
func WithPassword(password string) RedisOption {
	return func(o *redis.Options) {
		o.Password = password
	}
}

// WithDB selects a Redis logical database.
func WithDB(db int) RedisOption {
	return func(o *redis.Options) {
		o.DB = db
	}
}

// NewRedisInvalidator creates an invalidator against the given Redis address.
// The connection is verified with a ping.
func NewRedisInvalidator(ctx context.Context, addr string, opts ...RedisOption) (*RedisInvalidator, error) {
	options := &redis.Options{Addr: addr}
	for _, opt := range opts {
		opt(options)
	}
	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisInvalidator{
		client: client,
		logger: slog.Default().With("component", "redis-invalidator"),
	}, nil
}

// Invalidate scans for keys matching each pattern and deletes them.
func (r *RedisInvalidator) Invalidate(ctx context.Context, patterns ...string) (int, error) {
	evicted := 0
	for _, pattern := range patterns {
		n, err := r.invalidatePattern(ctx, pattern)
		evicted += n
		if err != nil {
			return evicted, err
		}
	}
	r.logger.Debug("cache invalidated", "patterns", len(patterns), "evicted", evicted)
	return evicted, nil
}

func (r *RedisInvalidator) invalidatePattern(ctx context.Context, pattern string) (int, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	evicted := 0
	iter := r.client.Scan(opCtx, 0, pattern, 100).Iterator()

	batch := make([]string, 0, 100)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := r.client.Del(opCtx, batch...).Result()
		evicted += int(n)
		batch = batch[:0]
		return err
	}

	for iter.Next(opCtx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return evicted, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return evicted, err
	}
	if err := flush(); err != nil {
		return evicted, err
	}
	return evicted, nil
}

// Close releases the Redis client.
func (r *RedisInvalidator) Close() error {
	return r.client.Close()
}
