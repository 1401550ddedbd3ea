package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// CartLine is one (menu item, quantity) pair of a submitted cart
type CartLine struct {
	MenuItemID uuid.UUID
	Quantity   int
}

// PlaceOrderRequest is a cart submission.
// Prices are never taken from the caller; TotalAmount is recorded as submitted.
type PlaceOrderRequest struct {
	AccountID       uuid.UUID
	RestaurantID    uuid.UUID
	Items           []CartLine
	DeliveryAddress string
	DeliveryPhone   string
	TotalAmount     decimal.Decimal
	DonationAmount  decimal.Decimal
	NGOID           *uuid.UUID
	PaymentID       string
	CouponCode      string
	RedeemPoints    int64
	// IdempotencyKey is optional. When set, a replay within the TTL is rejected.
	IdempotencyKey string
}

// OrderListFilter holds paging and an optional status filter
type OrderListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Status   string
}

// OrderItemResponse is an order line with its captured price
type OrderItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// OrderResponse is the outbound view of an order
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	AccountID       uuid.UUID           `json:"account_id"`
	RestaurantID    uuid.UUID           `json:"restaurant_id"`
	Status          string              `json:"status"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	ItemsSubtotal   decimal.Decimal     `json:"items_subtotal"`
	DonationAmount  decimal.Decimal     `json:"donation_amount"`
	NGOID           *uuid.UUID          `json:"ngo_id,omitempty"`
	PaymentID       string              `json:"payment_id,omitempty"`
	DeliveryAddress string              `json:"delivery_address"`
	DeliveryPhone   string              `json:"delivery_phone"`
	CouponCode      string              `json:"coupon_code,omitempty"`
	RedeemedPoints  int64               `json:"redeemed_points"`
	PointsEarned    int64               `json:"points_earned"`
	CourierID       *uuid.UUID          `json:"courier_id,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

// ToOrderResponse converts a domain Order to its response DTO
func ToOrderResponse(order *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items[i] = OrderItemResponse{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price,
			LineTotal:  item.LineTotal(),
		}
	}

	return OrderResponse{
		ID:              order.ID,
		AccountID:       order.AccountID,
		RestaurantID:    order.RestaurantID,
		Status:          order.Status.String(),
		TotalAmount:     order.TotalAmount,
		ItemsSubtotal:   order.ItemsSubtotal(),
		DonationAmount:  order.DonationAmount,
		NGOID:           order.NGOID,
		PaymentID:       order.PaymentID,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryPhone:   order.DeliveryPhone,
		CouponCode:      order.CouponCode,
		RedeemedPoints:  order.RedeemedPoints,
		PointsEarned:    order.PointsEarned,
		CourierID:       order.CourierID,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Version:         order.Version,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []ordering.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}
