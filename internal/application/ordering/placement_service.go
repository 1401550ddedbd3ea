package ordering

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/account"
	"github.com/kitchencloud/backend/internal/domain/catalog"
	"github.com/kitchencloud/backend/internal/domain/ordering"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/kitchencloud/backend/internal/infrastructure/logger"
	"github.com/kitchencloud/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PlacementRecorder receives placement outcomes, typically for metrics
type PlacementRecorder interface {
	RecordOrderPlaced(ctx context.Context, house bool, pointsEarned int64)
	RecordPlacementRejected(ctx context.Context, reason string)
}

// PlacementService places orders. Coupon claim, point debit, order insert and
// loyalty credit commit or roll back together.
type PlacementService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	recorder       PlacementRecorder
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
}

// NewPlacementService creates a new PlacementService
func NewPlacementService(txScope TransactionScope) *PlacementService {
	return &PlacementService{
		txScope:        txScope,
		idempotencyTTL: shared.DefaultIdempotencyTTL,
	}
}

// SetEventPublisher sets the publisher that receives events after commit
func (s *PlacementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetRecorder sets the placement outcome recorder
func (s *PlacementService) SetRecorder(recorder PlacementRecorder) {
	s.recorder = recorder
}

// SetIdempotencyStore enables the optional idempotency key
func (s *PlacementService) SetIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) {
	s.idempotency = store
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// PlaceOrder validates the cart, applies coupon and points, persists the order
// and credits house loyalty points, all inside one transaction.
func (s *PlacementService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ordering", "place_order",
		telemetry.SpanAttrAccountID, req.AccountID.String(),
		telemetry.SpanAttrRestaurantID, req.RestaurantID.String(),
		telemetry.SpanAttrItemCount, len(req.Items),
	)
	defer span.End()
	log := logger.L(ctx).With(
		zap.String("account_id", req.AccountID.String()),
		zap.String("restaurant_id", req.RestaurantID.String()),
	)

	release, err := s.claimIdempotencyKey(ctx, req)
	if err != nil {
		s.recordRejected(ctx, err)
		telemetry.RecordError(span, err)
		return nil, err
	}

	var (
		placed  *ordering.Order
		house   bool
		pending []shared.DomainEvent
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		acct, restaurant, err := s.resolveParties(ctx, repos, req)
		if err != nil {
			return err
		}

		order, err := ordering.NewOrder(acct.ID, restaurant.ID, ordering.Details{
			TotalAmount:     req.TotalAmount,
			DonationAmount:  req.DonationAmount,
			NGOID:           req.NGOID,
			PaymentID:       req.PaymentID,
			DeliveryAddress: req.DeliveryAddress,
			DeliveryPhone:   req.DeliveryPhone,
		})
		if err != nil {
			return err
		}

		if err := s.applyCoupon(ctx, repos, acct, order, req.CouponCode); err != nil {
			return err
		}
		if err := s.redeemPoints(ctx, repos, acct, order, req.RedeemPoints); err != nil {
			return err
		}
		if err := s.buildLines(ctx, repos, order, req.Items); err != nil {
			return err
		}

		house = restaurant.IsHouse()
		if err := order.Place(house); err != nil {
			return err
		}
		if err := repos.OrderRepo().Create(ctx, order); err != nil {
			return err
		}

		if order.PointsEarned > 0 {
			if err := acct.CreditPoints(order.PointsEarned); err != nil {
				return err
			}
			if err := repos.AccountRepo().CreditPoints(ctx, acct.ID, order.PointsEarned); err != nil {
				return err
			}
		}

		placed = order
		pending = append(pending, acct.PullDomainEvents()...)
		pending = append(pending, order.PullDomainEvents()...)
		return nil
	})
	if err != nil {
		release()
		err = classifyError(err, "place order")
		s.recordRejected(ctx, err)
		telemetry.RecordError(span, err)
		log.Warn("order placement rejected", zap.Error(err))
		return nil, err
	}

	s.publish(ctx, pending)
	if s.recorder != nil {
		s.recorder.RecordOrderPlaced(ctx, house, placed.PointsEarned)
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, placed.ID.String(),
		telemetry.SpanAttrHouse, house,
		telemetry.SpanAttrPoints, placed.PointsEarned,
	)
	telemetry.SetOK(span)
	log.Info("order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("total_amount", placed.TotalAmount.String()),
		zap.Int64("redeemed_points", placed.RedeemedPoints),
		zap.Int64("points_earned", placed.PointsEarned),
	)

	resp := ToOrderResponse(placed)
	return &resp, nil
}

func (s *PlacementService) resolveParties(ctx context.Context, repos TransactionalRepositories, req PlaceOrderRequest) (*account.Account, *catalog.Restaurant, error) {
	acct, err := repos.AccountRepo().FindByIDForUpdate(ctx, req.AccountID)
	if err != nil {
		return nil, nil, notFoundAs(err, "account", req.AccountID)
	}
	restaurant, err := repos.RestaurantRepo().FindByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, nil, notFoundAs(err, "restaurant", req.RestaurantID)
	}
	return acct, restaurant, nil
}

func (s *PlacementService) applyCoupon(ctx context.Context, repos TransactionalRepositories, acct *account.Account, order *ordering.Order, raw string) error {
	if account.NormalizeCouponCode(raw) == "" {
		return nil
	}
	code, err := acct.ClaimCoupon(raw)
	if err != nil {
		return err
	}
	if err := repos.AccountRepo().ClaimCoupon(ctx, acct.ID, code); err != nil {
		return err
	}
	order.ApplyCoupon(code)
	return nil
}

func (s *PlacementService) redeemPoints(ctx context.Context, repos TransactionalRepositories, acct *account.Account, order *ordering.Order, points int64) error {
	if points == 0 {
		return nil
	}
	if err := acct.RedeemPoints(points); err != nil {
		return err
	}
	if err := repos.AccountRepo().DebitPoints(ctx, acct.ID, points); err != nil {
		return err
	}
	order.ApplyRedeemedPoints(points)
	return nil
}

func (s *PlacementService) buildLines(ctx context.Context, repos TransactionalRepositories, order *ordering.Order, lines []CartLine) error {
	if len(lines) == 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Order must contain at least one item")
	}
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MenuItemID)
	}
	items, err := repos.MenuItemRepo().FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, line := range lines {
		item, ok := items[line.MenuItemID]
		if !ok {
			return shared.NewNotFoundError("menu item", line.MenuItemID)
		}
		if _, err := order.AddItem(item, line.Quantity); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewNotFoundError("menu item", line.MenuItemID)
			}
			return err
		}
	}
	return nil
}

// claimIdempotencyKey returns a release func that frees the key if placement fails.
// Store outages do not block placement.
func (s *PlacementService) claimIdempotencyKey(ctx context.Context, req PlaceOrderRequest) (func(), error) {
	noop := func() {}
	if s.idempotency == nil || req.IdempotencyKey == "" {
		return noop, nil
	}

	key := shared.ScopedIdempotencyKey("order", req.AccountID, req.IdempotencyKey)
	fresh, err := s.idempotency.MarkProcessed(ctx, key, s.idempotencyTTL)
	if err != nil {
		logger.L(ctx).Warn("idempotency store unavailable, continuing without key",
			zap.String("key", key), zap.Error(err))
		return noop, nil
	}
	if !fresh {
		return noop, shared.NewDomainError(shared.CodeDuplicateRequest, "An order with this idempotency key was already submitted")
	}

	return func() {
		if err := s.idempotency.Release(context.WithoutCancel(ctx), key); err != nil {
			logger.L(ctx).Warn("failed to release idempotency key", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func (s *PlacementService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		logger.L(ctx).Error("failed to publish order events", zap.Error(err))
	}
}

func (s *PlacementService) recordRejected(ctx context.Context, err error) {
	if s.recorder == nil {
		return
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		s.recorder.RecordPlacementRejected(ctx, domainErr.Code)
		return
	}
	s.recorder.RecordPlacementRejected(ctx, shared.CodePersistenceFailure)
}

// notFoundAs replaces a bare not-found with one naming the resource
func notFoundAs(err error, resource string, id uuid.UUID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(resource, id)
	}
	return err
}

// classifyError passes domain errors through and wraps everything else as PERSISTENCE_FAILURE
func classifyError(err error, op string) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return shared.NewPersistenceError(op, err)
}
