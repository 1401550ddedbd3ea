package recommendation

import (
	"context"

	"github.com/google/uuid"
)

// FrequencyRepository ranks menu items by how often they appear in order lines.
// Soft-deleted menu items are never returned. Results are ordered by count, then name.
type FrequencyRepository interface {
	TopForAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]DishFrequency, error)
	TopGlobal(ctx context.Context, limit int) ([]DishFrequency, error)
}
