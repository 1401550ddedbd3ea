package catalog

import (
	"context"

	"github.com/google/uuid"
)

// RestaurantRepository is the read side of the restaurant catalog
type RestaurantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Restaurant, error)
	Save(ctx context.Context, restaurant *Restaurant) error
}

// MenuItemRepository is the read side of the dish catalog
type MenuItemRepository interface {
	// FindByID returns the item even when it is soft-deleted
	FindByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)

	// FindByIDs returns the items that exist, keyed by id
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*MenuItem, error)

	Save(ctx context.Context, item *MenuItem) error
}
