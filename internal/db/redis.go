package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultRedisKeyPrefix namespaces the keys written by RedisStore.
const DefaultRedisKeyPrefix = "healthz"

// insertHealthCheckScript assigns the next identifier and stores the record
// in one atomic step so a failed call leaves no partial state behind.
var insertHealthCheckScript = redis.NewScript(`
local id = redis.call('INCR', KEYS[1])
redis.call('HSET', KEYS[2], id, ARGV[1])
return id
`)

// RedisStore keeps health checks in a hash keyed by a counter-assigned id.
type RedisStore struct {
	Client *redis.Client

	seqKey     string
	recordsKey string
}

// InitRedis initializes a Redis client and returns a RedisStore.
func InitRedis(addr, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to instrument redis tracing: %w", err)
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	zap.L().Info("Connected to Redis", zap.String("addr", addr))
	return NewRedisStore(client, prefix), nil
}

// NewRedisStore wraps an existing client. An empty prefix selects
// DefaultRedisKeyPrefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisStore{
		Client:     client,
		seqKey:     prefix + ":health_checks:seq",
		recordsKey: prefix + ":health_checks",
	}
}

// InsertHealthCheck stores a health check taken at the given time.
func (r *RedisStore) InsertHealthCheck(ctx context.Context, at time.Time) (int64, error) {
	id, err := insertHealthCheckScript.Run(ctx, r.Client,
		[]string{r.seqKey, r.recordsKey},
		at.UTC().Format(time.RFC3339Nano),
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("insert health check: %w", err)
	}
	return id, nil
}

// CountHealthChecks returns the number of stored health checks.
func (r *RedisStore) CountHealthChecks(ctx context.Context) (int64, error) {
	n, err := r.Client.HLen(ctx, r.recordsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("count health checks: %w", err)
	}
	return n, nil
}

// DeleteHealthChecks removes all stored health checks. The id counter is
// left in place so identifiers keep increasing.
func (r *RedisStore) DeleteHealthChecks(ctx context.Context) error {
	if err := r.Client.Del(ctx, r.recordsKey).Err(); err != nil {
		return fmt.Errorf("delete health checks: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (r *RedisStore) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
