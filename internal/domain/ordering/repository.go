package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/shared"
)

// OrderQuery narrows an order listing. Nil fields do not filter.
type OrderQuery struct {
	shared.Filter
	AccountID    *uuid.UUID
	RestaurantID *uuid.UUID
	CourierID    *uuid.UUID
	Status       *OrderStatus
	// Unassigned restricts to orders without a courier
	Unassigned bool
}

// OrderRepository defines persistence for the order ledger
type OrderRepository interface {
	// FindByID loads an order with its items in position order
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate loads an order and holds a row lock until the surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// Find lists orders matching the query and returns the total match count
	Find(ctx context.Context, query OrderQuery) ([]Order, int64, error)

	// Create inserts the order together with all of its items as one unit
	Create(ctx context.Context, order *Order) error

	// Update persists status and courier changes of an existing order
	Update(ctx context.Context, order *Order) error
}
