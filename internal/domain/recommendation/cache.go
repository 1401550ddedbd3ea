package recommendation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cache stores ranked dish lists.
//
// Cache keys follow the pattern:
// - Global: recommendation:global
// - Personal: recommendation:account:{account_id}
//
// An empty list is a valid cached value, so lookups report presence separately.
type Cache interface {
	// Get returns the cached list and whether the key was present
	Get(ctx context.Context, key string) ([]Dish, bool, error)

	// Set stores a list. If ttl is 0, the implementation default applies.
	Set(ctx context.Context, key string, dishes []Dish, ttl time.Duration) error

	// Delete removes the given keys
	Delete(ctx context.Context, keys ...string) error

	// Close releases any resources held by the cache
	Close() error
}

// GlobalCacheKey is the key of the anonymous ranking
const GlobalCacheKey = "recommendation:global"

// CacheKey returns the key for an account's ranking, or the global key when accountID is nil
func CacheKey(accountID *uuid.UUID) string {
	if accountID == nil || *accountID == uuid.Nil {
		return GlobalCacheKey
	}
	return "recommendation:account:" + accountID.String()
}

// CacheConfig holds configuration for the recommendation cache
type CacheConfig struct {
	// TTL is the lifetime of a cached ranking (default: 5m)
	TTL time.Duration
	// Enabled turns caching on
	Enabled bool
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:     5 * time.Minute,
		Enabled: true,
	}
}
