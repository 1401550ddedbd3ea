package ordering

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/catalog"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Details carries the caller-supplied metadata of a new order
type Details struct {
	TotalAmount     decimal.Decimal
	DonationAmount  decimal.Decimal
	NGOID           *uuid.UUID
	PaymentID       string
	DeliveryAddress string
	DeliveryPhone   string
}

// Order is the aggregate root of the order ledger
type Order struct {
	shared.BaseAggregateRoot
	AccountID       uuid.UUID
	RestaurantID    uuid.UUID
	Status          OrderStatus
	TotalAmount     decimal.Decimal // client-computed, trusted
	DonationAmount  decimal.Decimal
	NGOID           *uuid.UUID
	PaymentID       string
	DeliveryAddress string
	DeliveryPhone   string
	CouponCode      string
	RedeemedPoints  int64
	PointsEarned    int64
	CourierID       *uuid.UUID
	Items           []OrderItem
}

// NewOrder creates a pending order without items
func NewOrder(accountID, restaurantID uuid.UUID, d Details) (*Order, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Account ID cannot be empty")
	}
	if restaurantID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Restaurant ID cannot be empty")
	}
	if d.TotalAmount.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Total amount cannot be negative")
	}
	if d.DonationAmount.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Donation amount cannot be negative")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountID:         accountID,
		RestaurantID:      restaurantID,
		Status:            StatusPending,
		TotalAmount:       d.TotalAmount,
		DonationAmount:    d.DonationAmount,
		NGOID:             d.NGOID,
		PaymentID:         d.PaymentID,
		DeliveryAddress:   d.DeliveryAddress,
		DeliveryPhone:     d.DeliveryPhone,
		Items:             make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line priced from the catalog.
// Soft-deleted items are treated as missing.
func (o *Order) AddItem(item *catalog.MenuItem, quantity int) (*OrderItem, error) {
	if item == nil || item.Deleted {
		return nil, shared.NewDomainError(shared.CodeNotFound, "Menu item not found")
	}
	if !item.BelongsTo(o.RestaurantID) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Menu item %s is not offered by this restaurant", item.ID))
	}
	if !item.Available {
		return nil, shared.NewDomainError(shared.CodeItemUnavailable,
			fmt.Sprintf("Menu item %s is currently unavailable", item.Name))
	}

	line, err := NewOrderItem(o.ID, item, quantity)
	if err != nil {
		return nil, err
	}
	line.Position = len(o.Items)
	o.Items = append(o.Items, *line)
	o.Touch()
	return line, nil
}

// ApplyCoupon records the normalized coupon claimed for this order
func (o *Order) ApplyCoupon(code string) {
	o.CouponCode = code
}

// ApplyRedeemedPoints records the points debited for this order
func (o *Order) ApplyRedeemedPoints(points int64) {
	o.RedeemedPoints = points
}

// ItemsSubtotal is the server-side sum of snapshot price × quantity
func (o *Order) ItemsSubtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal())
	}
	return total
}

// Place finalizes a new order, recording the points it earns
func (o *Order) Place(house bool) error {
	if len(o.Items) == 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Order must contain at least one item")
	}
	if o.Status != StatusPending {
		return shared.NewDomainError(shared.CodeInvalidState, "Only pending orders can be placed")
	}
	if house {
		o.PointsEarned = PointsEarned(o.TotalAmount)
	}
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return nil
}

// UpdateStatus moves the order forward in the lifecycle
func (o *Order) UpdateStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	old := o.Status
	o.Status = target
	o.Touch()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old))
	return nil
}

// AssignCourier hands the order to a delivery courier and sends it out
func (o *Order) AssignCourier(courierID uuid.UUID) error {
	if courierID == uuid.Nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Courier ID cannot be empty")
	}
	if o.CourierID != nil {
		return shared.NewDomainError(shared.CodeInvalidState, "Order already assigned")
	}
	if !o.Status.CanTransitionTo(StatusOutForDelivery) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot assign a courier to an order that is %s", o.Status))
	}

	old := o.Status
	o.CourierID = &courierID
	o.Status = StatusOutForDelivery
	o.Touch()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderCourierAssignedEvent(o))
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old))
	return nil
}

// IsAssigned reports whether a courier holds the order
func (o *Order) IsAssigned() bool {
	return o.CourierID != nil
}

// MenuItemIDs returns the menu items referenced by the order lines
func (o *Order) MenuItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(o.Items))
	for i := range o.Items {
		ids[i] = o.Items[i].MenuItemID
	}
	return ids
}
