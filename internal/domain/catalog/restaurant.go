package catalog

import (
	"strings"

	"github.com/kitchencloud/backend/internal/domain/shared"
)

// HouseRestaurantName is the display name of the platform's own storefront seeded by the migrations
const HouseRestaurantName = "Kitchen Cloud"

// Restaurant is a storefront listing menu items
type Restaurant struct {
	shared.BaseAggregateRoot
	Name        string
	OwnerName   string
	Email       string
	Phone       string
	CuisineType string
	Address     string
	Approved    bool
	// House marks the platform's own storefront. Orders placed there earn loyalty points.
	House bool
}

// NewRestaurant creates a third-party restaurant
func NewRestaurant(name, ownerName string) (*Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Restaurant name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Restaurant name cannot exceed 200 characters")
	}
	return &Restaurant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		OwnerName:         strings.TrimSpace(ownerName),
	}, nil
}

// NewHouseRestaurant creates the platform storefront
func NewHouseRestaurant(name string) (*Restaurant, error) {
	r, err := NewRestaurant(name, "")
	if err != nil {
		return nil, err
	}
	r.House = true
	r.Approved = true
	return r, nil
}

// IsHouse reports whether purchases here earn loyalty points
func (r *Restaurant) IsHouse() bool {
	return r.House
}

// Approve marks the restaurant as approved by an admin
func (r *Restaurant) Approve() {
	r.Approved = true
	r.Touch()
	r.IncrementVersion()
}
