package ordering

import (
	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeOrder is the aggregate type for order events
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced          = "OrderPlaced"
	EventTypeOrderStatusChanged   = "OrderStatusChanged"
	EventTypeOrderCourierAssigned = "OrderCourierAssigned"
)

// OrderPlacedEvent is published after an order and its items are committed
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID       `json:"order_id"`
	AccountID    uuid.UUID       `json:"account_id"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PointsEarned int64           `json:"points_earned"`
	MenuItemIDs  []uuid.UUID     `json:"menu_item_ids"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		AccountID:       o.AccountID,
		RestaurantID:    o.RestaurantID,
		TotalAmount:     o.TotalAmount,
		PointsEarned:    o.PointsEarned,
		MenuItemIDs:     o.MenuItemIDs(),
	}
}

// OrderStatusChangedEvent is published on every lifecycle move
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID   `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, old OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OldStatus:       old,
		NewStatus:       o.Status,
	}
}

// OrderCourierAssignedEvent is published when a courier takes an order
type OrderCourierAssignedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	CourierID uuid.UUID `json:"courier_id"`
}

// NewOrderCourierAssignedEvent creates a new OrderCourierAssignedEvent
func NewOrderCourierAssignedEvent(o *Order) *OrderCourierAssignedEvent {
	var courier uuid.UUID
	if o.CourierID != nil {
		courier = *o.CourierID
	}
	return &OrderCourierAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCourierAssigned, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		CourierID:       courier,
	}
}
