package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kitchencloud/backend/internal/domain/recommendation"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRecommendationCache stores ranked dish lists as JSON strings
type RedisRecommendationCache struct {
	client     redis.UniversalClient
	keyPrefix  string
	defaultTTL time.Duration
	logger     *zap.Logger
}

// NewRedisRecommendationCache creates a cache on a shared client
func NewRedisRecommendationCache(client redis.UniversalClient, cfg recommendation.CacheConfig, logger *zap.Logger) *RedisRecommendationCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = recommendation.DefaultCacheConfig().TTL
	}
	return &RedisRecommendationCache{
		client:     client,
		keyPrefix:  "kc:",
		defaultTTL: ttl,
		logger:     logger,
	}
}

// Get returns the cached list. Undecodable entries are deleted and reported as a miss.
func (c *RedisRecommendationCache) Get(ctx context.Context, key string) ([]recommendation.Dish, bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}

	var dishes []recommendation.Dish
	if err := json.Unmarshal(data, &dishes); err != nil {
		c.logger.Warn("Corrupted recommendation cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		_ = c.client.Del(ctx, c.keyPrefix+key).Err()
		return nil, false, nil
	}
	if dishes == nil {
		dishes = []recommendation.Dish{}
	}
	return dishes, true, nil
}

// Set stores the list
func (c *RedisRecommendationCache) Set(ctx context.Context, key string, dishes []recommendation.Dish, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if dishes == nil {
		dishes = []recommendation.Dish{}
	}
	data, err := json.Marshal(dishes)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}
	return nil
}

// Delete removes keys
func (c *RedisRecommendationCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.keyPrefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete recommendations from cache: %w", err)
	}
	return nil
}

// Close is a no-op; the client is owned by the caller
func (c *RedisRecommendationCache) Close() error {
	return nil
}

type cachedDishes struct {
	dishes    []recommendation.Dish
	expiresAt time.Time
}

// InMemoryRecommendationCache is a process-local cache with lazy and periodic expiry
type InMemoryRecommendationCache struct {
	mu         sync.RWMutex
	entries    map[string]cachedDishes
	defaultTTL time.Duration
	stopChan   chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// NewInMemoryRecommendationCache creates the cache and starts its sweeper
func NewInMemoryRecommendationCache(cfg recommendation.CacheConfig) *InMemoryRecommendationCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = recommendation.DefaultCacheConfig().TTL
	}
	c := &InMemoryRecommendationCache{
		entries:    make(map[string]cachedDishes),
		defaultTTL: ttl,
		stopChan:   make(chan struct{}),
	}
	c.wg.Add(1)
	go c.sweepLoop()
	return c
}

// Get returns a copy of the cached list
func (c *InMemoryRecommendationCache) Get(_ context.Context, key string) ([]recommendation.Dish, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !time.Now().Before(e.expiresAt) {
		return nil, false, nil
	}
	out := make([]recommendation.Dish, len(e.dishes))
	copy(out, e.dishes)
	return out, true, nil
}

// Set stores a copy of dishes
func (c *InMemoryRecommendationCache) Set(_ context.Context, key string, dishes []recommendation.Dish, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	stored := make([]recommendation.Dish, len(dishes))
	copy(stored, dishes)

	c.mu.Lock()
	c.entries[key] = cachedDishes{dishes: stored, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete removes keys
func (c *InMemoryRecommendationCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.mu.Unlock()
	return nil
}

// Close stops the sweeper. Safe to call more than once.
func (c *InMemoryRecommendationCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryRecommendationCache) sweepLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(defaultSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.entries {
				if !now.Before(e.expiresAt) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}

var (
	_ recommendation.Cache = (*RedisRecommendationCache)(nil)
	_ recommendation.Cache = (*InMemoryRecommendationCache)(nil)
)
