package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MenuItem is a dish offered by exactly one restaurant.
// Price is authoritative; orders snapshot it at placement time.
type MenuItem struct {
	shared.BaseAggregateRoot
	RestaurantID uuid.UUID
	Name         string
	Description  string
	Category     string
	ImageURL     string
	Veg          bool
	Price        decimal.Decimal
	Available    bool
	Deleted      bool
}

// NewMenuItem creates an available menu item
func NewMenuItem(restaurantID uuid.UUID, name string, price decimal.Decimal) (*MenuItem, error) {
	if restaurantID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Restaurant ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Menu item name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Price cannot be negative")
	}
	return &MenuItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RestaurantID:      restaurantID,
		Name:              name,
		Price:             price,
		Available:         true,
	}, nil
}

// ChangePrice updates the catalog price. Existing order lines keep their snapshot.
func (m *MenuItem) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Price cannot be negative")
	}
	m.Price = price
	m.Touch()
	m.IncrementVersion()
	return nil
}

// SetAvailable toggles whether the item can be ordered
func (m *MenuItem) SetAvailable(available bool) {
	m.Available = available
	m.Touch()
	m.IncrementVersion()
}

// SoftDelete hides the item from ordering and recommendations
func (m *MenuItem) SoftDelete() {
	m.Deleted = true
	m.Available = false
	m.Touch()
	m.IncrementVersion()
}

// Orderable reports whether the item can go into a new order
func (m *MenuItem) Orderable() bool {
	return m.Available && !m.Deleted
}

// BelongsTo reports whether the item is listed by the given restaurant
func (m *MenuItem) BelongsTo(restaurantID uuid.UUID) bool {
	return m.RestaurantID == restaurantID
}
