package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/catalog"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderItem is a line of an order. Price is the catalog price captured at placement.
type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	MenuItemID uuid.UUID
	Name       string
	Quantity   int
	Price      decimal.Decimal
	Position   int
	CreatedAt  time.Time
}

// NewOrderItem snapshots the menu item's current price
func NewOrderItem(orderID uuid.UUID, item *catalog.MenuItem, quantity int) (*OrderItem, error) {
	if item == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Menu item is required")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Quantity must be positive")
	}
	return &OrderItem{
		ID:         uuid.New(),
		OrderID:    orderID,
		MenuItemID: item.ID,
		Name:       item.Name,
		Quantity:   quantity,
		Price:      item.Price,
		CreatedAt:  time.Now(),
	}, nil
}

// LineTotal returns price × quantity
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
