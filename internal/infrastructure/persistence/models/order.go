package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for orders
type OrderModel struct {
	AggregateModel
	AccountID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	RestaurantID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	Status          ordering.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount     decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	ItemsSubtotal   decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	DonationAmount  decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	NGOID           *uuid.UUID           `gorm:"column:ngo_id;type:uuid"`
	PaymentID       string               `gorm:"type:varchar(100)"`
	DeliveryAddress string               `gorm:"type:text"`
	DeliveryPhone   string               `gorm:"type:varchar(30)"`
	CouponCode      string               `gorm:"type:varchar(64)"`
	RedeemedPoints  int64                `gorm:"not null;default:0"`
	PointsEarned    int64                `gorm:"not null;default:0"`
	CourierID       *uuid.UUID           `gorm:"type:uuid;index"`
	Items           []OrderItemModel     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is one order line with its price snapshot
type OrderItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Quantity   int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Position   int             `gorm:"not null;default:0"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the model and its loaded items to a domain Order
func (m *OrderModel) ToDomain() *ordering.Order {
	o := &ordering.Order{
		BaseAggregateRoot: m.AggregateRoot(),
		AccountID:         m.AccountID,
		RestaurantID:      m.RestaurantID,
		Status:            m.Status,
		TotalAmount:       m.TotalAmount,
		DonationAmount:    m.DonationAmount,
		NGOID:             m.NGOID,
		PaymentID:         m.PaymentID,
		DeliveryAddress:   m.DeliveryAddress,
		DeliveryPhone:     m.DeliveryPhone,
		CouponCode:        m.CouponCode,
		RedeemedPoints:    m.RedeemedPoints,
		PointsEarned:      m.PointsEarned,
		CourierID:         m.CourierID,
		Items:             make([]ordering.OrderItem, len(m.Items)),
	}
	for i, it := range m.Items {
		o.Items[i] = ordering.OrderItem{
			ID:         it.ID,
			OrderID:    it.OrderID,
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
			Position:   it.Position,
			CreatedAt:  it.CreatedAt,
		}
	}
	return o
}

// OrderModelFromDomain maps a domain Order together with its lines
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{
		AccountID:       o.AccountID,
		RestaurantID:    o.RestaurantID,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		ItemsSubtotal:   o.ItemsSubtotal(),
		DonationAmount:  o.DonationAmount,
		NGOID:           o.NGOID,
		PaymentID:       o.PaymentID,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryPhone:   o.DeliveryPhone,
		CouponCode:      o.CouponCode,
		RedeemedPoints:  o.RedeemedPoints,
		PointsEarned:    o.PointsEarned,
		CourierID:       o.CourierID,
		Items:           make([]OrderItemModel, len(o.Items)),
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	for i, it := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:         it.ID,
			OrderID:    o.ID,
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
			Position:   it.Position,
			CreatedAt:  it.CreatedAt,
		}
	}
	return m
}
