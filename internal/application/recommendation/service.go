package recommendation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/recommendation"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/kitchencloud/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Service builds dish recommendations from order history
type Service struct {
	frequencyRepo recommendation.FrequencyRepository
	cache         recommendation.Cache
	cacheTTL      time.Duration
	limit         int
}

// NewService creates a new recommendation Service
func NewService(frequencyRepo recommendation.FrequencyRepository) *Service {
	return &Service{
		frequencyRepo: frequencyRepo,
		limit:         recommendation.DefaultLimit,
	}
}

// SetCache enables result caching
func (s *Service) SetCache(cache recommendation.Cache, ttl time.Duration) {
	s.cache = cache
	s.cacheTTL = ttl
}

// Recommend returns up to ten dishes: the account's most ordered first, then the most ordered overall.
// A nil accountID yields the global ranking only.
func (s *Service) Recommend(ctx context.Context, accountID *uuid.UUID) ([]DishResponse, error) {
	key := recommendation.CacheKey(accountID)
	if dishes, ok := s.cached(ctx, key); ok {
		return ToDishResponses(dishes), nil
	}

	var favorites []recommendation.DishFrequency
	if accountID != nil && *accountID != uuid.Nil {
		var err error
		favorites, err = s.frequencyRepo.TopForAccount(ctx, *accountID, s.limit)
		if err != nil {
			return nil, shared.NewPersistenceError("load account favorites", err)
		}
	}
	popular, err := s.frequencyRepo.TopGlobal(ctx, s.limit)
	if err != nil {
		return nil, shared.NewPersistenceError("load popular dishes", err)
	}

	dishes := recommendation.Rank(favorites, popular, s.limit)
	s.store(ctx, key, dishes)
	return ToDishResponses(dishes), nil
}

// cached treats cache errors as misses
func (s *Service) cached(ctx context.Context, key string) ([]recommendation.Dish, bool) {
	if s.cache == nil {
		return nil, false
	}
	dishes, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.L(ctx).Warn("recommendation cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return dishes, ok
}

func (s *Service) store(ctx context.Context, key string, dishes []recommendation.Dish) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, dishes, s.cacheTTL); err != nil {
		logger.L(ctx).Warn("recommendation cache write failed", zap.String("key", key), zap.Error(err))
	}
}
