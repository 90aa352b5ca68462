// Package cache stores JSON-encoded values with a TTL.
//
// Two drivers exist: Redis, used when REDIS_ADDR is set and reachable, and
// an in-process memory store used otherwise. Both record hits and misses in
// the Prometheus cache counters.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coconina/storefront/config"
	"github.com/coconina/storefront/pkg/logger"
	"github.com/coconina/storefront/pkg/metrics"
)

// Store is the cache contract shared by every driver.
type Store interface {
	// Get unmarshals the value under key into dest. Returns true on a hit,
	// false on miss, expiry or decode error.
	Get(ctx context.Context, key string, dest interface{}) bool
	// Set stores value under key for ttl. A zero ttl stores nothing.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Del removes keys.
	Del(ctx context.Context, keys ...string) error
	// Driver names the backend: "redis" or "memory".
	Driver() string
}

// Connect picks the Redis driver when configured and reachable and falls
// back to memory otherwise. It never fails.
func Connect(ctx context.Context) Store {
	addr := config.RedisAddr()
	if addr == "" {
		return NewMemory()
	}

	rs, err := NewRedis(ctx, addr, config.RedisPassword())
	if err != nil {
		logger.Warn("cache: redis unavailable, using memory", "addr", addr, "error", err)
		return NewMemory()
	}
	logger.Info("cache: connected", "driver", rs.Driver(), "addr", addr)
	return rs
}

// ─── Memory driver ────────────────────────────────────────────────────────────

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded map with lazy expiry.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemory returns an empty memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), now: time.Now}
}

func (m *MemoryStore) Driver() string { return "memory" }

func (m *MemoryStore) Get(_ context.Context, key string, dest interface{}) bool {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || !m.now().Before(item.expiresAt) {
		if ok {
			m.evict(key)
		}
		metrics.CacheMisses.WithLabelValues(m.Driver()).Inc()
		return false
	}

	if err := json.Unmarshal(item.data, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(m.Driver()).Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues(m.Driver()).Inc()
	return true
}

// evict drops key only if it is still expired; a Set that landed after the
// read lock was released must survive.
func (m *MemoryStore) evict(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.items[key]; ok && !m.now().Before(cur.expiresAt) {
		delete(m.items, key)
	}
}

func (m *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %q: %w", key, err)
	}

	m.mu.Lock()
	m.items[key] = memoryItem{data: data, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
