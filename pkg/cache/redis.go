package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coconina/storefront/pkg/metrics"
)

// RedisStore keeps values in Redis as JSON strings.
type RedisStore struct {
	client *redis.Client
}

// NewRedis connects to addr and verifies the connection with a ping.
func NewRedis(ctx context.Context, addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisFromClient wraps an existing client without pinging it.
func NewRedisFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Driver() string { return "redis" }

func (r *RedisStore) Get(ctx context.Context, key string, dest interface{}) bool {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		metrics.CacheMisses.WithLabelValues(r.Driver()).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(r.Driver()).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(r.Driver()).Inc()
	return true
}

func (r *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %q: %w", key, err)
	}

	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Close releases the connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
