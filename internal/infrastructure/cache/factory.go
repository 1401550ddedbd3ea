package cache

import (
	"fmt"

	"github.com/kitchencloud/backend/internal/domain/recommendation"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/kitchencloud/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Factory builds the Redis-backed stores when Redis is enabled, and in-memory ones otherwise
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool

	client *redis.Client
	dialed bool
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to in-memory stores.
// Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// WithRedisClient reuses an existing client instead of dialing
func WithRedisClient(client *redis.Client) FactoryOption {
	return func(f *Factory) {
		f.client = client
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// redisClient returns the shared client, dialing it on first use.
// A nil client with nil error means Redis is disabled or unreachable with fallback allowed.
func (f *Factory) redisClient() (*redis.Client, error) {
	if f.client != nil {
		return f.client, nil
	}
	if !f.redisConfig.Enabled {
		return nil, nil
	}

	client, err := NewRedisClient(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("Redis required but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory stores. "+
			"Idempotency keys and cached recommendations are not shared between replicas.",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Error(err),
		)
		f.redisConfig.Enabled = false
		return nil, nil
	}
	f.client = client
	f.dialed = true
	return client, nil
}

// CreateIdempotencyStore returns the idempotency store for order placement
func (f *Factory) CreateIdempotencyStore() (shared.IdempotencyStore, error) {
	client, err := f.redisClient()
	if err != nil {
		return nil, err
	}
	if client == nil {
		f.logger.Info("Using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}
	f.logger.Info("Using Redis idempotency store")
	return NewRedisIdempotencyStoreWithClient(client, ""), nil
}

// CreateRecommendationCache returns the recommendation cache
func (f *Factory) CreateRecommendationCache(cfg recommendation.CacheConfig) (recommendation.Cache, error) {
	client, err := f.redisClient()
	if err != nil {
		return nil, err
	}
	if client == nil {
		f.logger.Info("Using in-memory recommendation cache", zap.Duration("ttl", cfg.TTL))
		return NewInMemoryRecommendationCache(cfg), nil
	}
	f.logger.Info("Using Redis recommendation cache", zap.Duration("ttl", cfg.TTL))
	return NewRedisRecommendationCache(client, cfg, f.logger), nil
}

// Client returns the shared Redis client, or nil when running on in-memory stores
func (f *Factory) Client() *redis.Client {
	return f.client
}

// Close closes the shared Redis client if the factory dialed it
func (f *Factory) Close() error {
	if f.client == nil || !f.dialed {
		return nil
	}
	return f.client.Close()
}
