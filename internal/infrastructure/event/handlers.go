package event

import (
	"context"
	"fmt"

	"github.com/kitchencloud/backend/internal/domain/account"
	"github.com/kitchencloud/backend/internal/domain/ordering"
	"github.com/kitchencloud/backend/internal/domain/recommendation"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/kitchencloud/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// RecommendationInvalidator drops cached rankings that a new order makes stale:
// the ordering account's personal list and the global list.
type RecommendationInvalidator struct {
	cache recommendation.Cache
}

// NewRecommendationInvalidator creates the handler
func NewRecommendationInvalidator(cache recommendation.Cache) *RecommendationInvalidator {
	return &RecommendationInvalidator{cache: cache}
}

// EventTypes implements shared.EventHandler
func (h *RecommendationInvalidator) EventTypes() []string {
	return []string{ordering.EventTypeOrderPlaced}
}

// Handle implements shared.EventHandler
func (h *RecommendationInvalidator) Handle(ctx context.Context, evt shared.DomainEvent) error {
	placed, ok := evt.(*ordering.OrderPlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", evt, evt.EventType())
	}
	accountID := placed.AccountID
	if err := h.cache.Delete(ctx, recommendation.CacheKey(&accountID), recommendation.GlobalCacheKey); err != nil {
		return fmt.Errorf("invalidate recommendations for account %s: %w", accountID, err)
	}
	return nil
}

// AuditLogHandler writes one structured entry per domain event
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates the handler
func NewAuditLogHandler(l *zap.Logger) *AuditLogHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuditLogHandler{logger: l.Named("audit")}
}

// EventTypes returns nil so the handler receives every event
func (h *AuditLogHandler) EventTypes() []string { return nil }

// Handle implements shared.EventHandler
func (h *AuditLogHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	}

	switch e := evt.(type) {
	case *ordering.OrderPlacedEvent:
		fields = append(fields,
			zap.String("account_id", e.AccountID.String()),
			zap.String("restaurant_id", e.RestaurantID.String()),
			zap.String("total_amount", e.TotalAmount.StringFixed(2)),
			zap.Int64("points_earned", e.PointsEarned),
			zap.Int("items", len(e.MenuItemIDs)),
		)
	case *ordering.OrderStatusChangedEvent:
		fields = append(fields,
			zap.String("old_status", string(e.OldStatus)),
			zap.String("new_status", string(e.NewStatus)),
		)
	case *ordering.OrderCourierAssignedEvent:
		fields = append(fields, zap.String("courier_id", e.CourierID.String()))
	case *account.CouponRedeemedEvent:
		fields = append(fields, zap.String("code", e.Code))
	case *account.LoyaltyPointsChangedEvent:
		fields = append(fields,
			zap.Int64("old_balance", e.OldBalance),
			zap.Int64("new_balance", e.NewBalance),
			zap.String("reason", string(e.Reason)),
		)
	}

	logger.WithLogger(ctx, h.logger).Info("Domain event", fields...)
	return nil
}

var (
	_ shared.EventHandler = (*RecommendationInvalidator)(nil)
	_ shared.EventHandler = (*AuditLogHandler)(nil)
)
