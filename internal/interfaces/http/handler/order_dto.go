package handler

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appordering "github.com/kitchencloud/backend/internal/application/ordering"
)

// CartItemRequest is one cart line. Prices are looked up server-side.
type CartItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required,uuid"`
	Quantity   int    `json:"quantity"`
}

// PlaceOrderRequest is the body of POST /orders.
// AccountID defaults to the caller; only admins may place for another account.
type PlaceOrderRequest struct {
	AccountID       string            `json:"account_id" binding:"omitempty,uuid"`
	RestaurantID    string            `json:"restaurant_id" binding:"required,uuid"`
	Items           []CartItemRequest `json:"items" binding:"required,dive"`
	DeliveryAddress string            `json:"delivery_address" binding:"required,max=500"`
	DeliveryPhone   string            `json:"delivery_phone" binding:"required,max=32,phone"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	DonationAmount  decimal.Decimal   `json:"donation_amount"`
	NGOID           string            `json:"ngo_id" binding:"omitempty,uuid"`
	PaymentID       string            `json:"payment_id" binding:"max=128"`
	CouponCode      string            `json:"coupon_code" binding:"max=64,coupon"`
	RedeemPoints    int64             `json:"redeem_points"`
}

// toCommand converts the body; ids are already validated by binding
func (r PlaceOrderRequest) toCommand(accountID uuid.UUID, idempotencyKey string) appordering.PlaceOrderRequest {
	items := make([]appordering.CartLine, len(r.Items))
	for i, it := range r.Items {
		items[i] = appordering.CartLine{
			MenuItemID: uuid.MustParse(it.MenuItemID),
			Quantity:   it.Quantity,
		}
	}

	var ngoID *uuid.UUID
	if r.NGOID != "" {
		id := uuid.MustParse(r.NGOID)
		ngoID = &id
	}

	return appordering.PlaceOrderRequest{
		AccountID:       accountID,
		RestaurantID:    uuid.MustParse(r.RestaurantID),
		Items:           items,
		DeliveryAddress: r.DeliveryAddress,
		DeliveryPhone:   r.DeliveryPhone,
		TotalAmount:     r.TotalAmount,
		DonationAmount:  r.DonationAmount,
		NGOID:           ngoID,
		PaymentID:       r.PaymentID,
		CouponCode:      r.CouponCode,
		RedeemPoints:    r.RedeemPoints,
		IdempotencyKey:  idempotencyKey,
	}
}

// UpdateStatusRequest is the body of PUT /orders/:id/status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
