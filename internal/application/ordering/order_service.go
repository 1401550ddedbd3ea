package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/ordering"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/kitchencloud/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// OrderService handles order ledger reads and the status/courier mutations
// performed after placement.
type OrderService struct {
	orderRepo      ordering.OrderRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository, txScope TransactionScope) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
	}
}

// SetEventPublisher sets the event publisher
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetOrder returns an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, classifyError(notFoundAs(err, "order", id), "load order")
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// ListOrders lists all orders, optionally by status
func (s *OrderService) ListOrders(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	query, err := toQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	return s.find(ctx, query)
}

// ListAccountOrders lists the orders placed by an account
func (s *OrderService) ListAccountOrders(ctx context.Context, accountID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	query, err := toQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	query.AccountID = &accountID
	return s.find(ctx, query)
}

// ListRestaurantOrders lists the orders received by a restaurant
func (s *OrderService) ListRestaurantOrders(ctx context.Context, restaurantID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	query, err := toQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	query.RestaurantID = &restaurantID
	return s.find(ctx, query)
}

// ListCourierOrders lists the deliveries assigned to a courier
func (s *OrderService) ListCourierOrders(ctx context.Context, courierID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	query, err := toQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	query.CourierID = &courierID
	return s.find(ctx, query)
}

// ListAvailableForDelivery lists ready orders that no courier has taken yet
func (s *OrderService) ListAvailableForDelivery(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	filter.Status = ""
	query, err := toQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	ready := ordering.StatusReady
	query.Status = &ready
	query.Unassigned = true
	return s.find(ctx, query)
}

// AssignCourier hands an unassigned order to a courier and marks it out for delivery
func (s *OrderService) AssignCourier(ctx context.Context, orderID, courierID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, "assign courier", func(order *ordering.Order) error {
		return order.AssignCourier(courierID)
	})
}

// UpdateStatus moves an order forward in its lifecycle
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderResponse, error) {
	target, err := ordering.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, orderID, "update order status", func(order *ordering.Order) error {
		return order.UpdateStatus(target)
	})
}

// mutate loads the order under a row lock, applies fn and saves it in one transaction
func (s *OrderService) mutate(ctx context.Context, orderID uuid.UUID, op string, fn func(order *ordering.Order) error) (*OrderResponse, error) {
	var updated *ordering.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return notFoundAs(err, "order", orderID)
		}
		if err := fn(order); err != nil {
			return err
		}
		if err := repos.OrderRepo().Update(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, classifyError(err, op)
	}

	events := updated.PullDomainEvents()
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			logger.L(ctx).Error("failed to publish order events",
				zap.String("order_id", orderID.String()), zap.Error(err))
		}
	}

	resp := ToOrderResponse(updated)
	return &resp, nil
}

func (s *OrderService) find(ctx context.Context, query ordering.OrderQuery) ([]OrderResponse, int64, error) {
	orders, total, err := s.orderRepo.Find(ctx, query)
	if err != nil {
		return nil, 0, classifyError(err, "list orders")
	}
	return ToOrderResponses(orders), total, nil
}

func toQuery(filter OrderListFilter) (ordering.OrderQuery, error) {
	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}.Normalized()

	query := ordering.OrderQuery{Filter: f}
	if filter.Status != "" {
		status, err := ordering.ParseOrderStatus(filter.Status)
		if err != nil {
			return ordering.OrderQuery{}, err
		}
		query.Status = &status
	}
	return query, nil
}
