package recommendation

import (
	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/recommendation"
	"github.com/shopspring/decimal"
)

// DishResponse is a recommended menu item
type DishResponse struct {
	MenuItemID   uuid.UUID       `json:"menu_item_id"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	Veg          bool            `json:"veg"`
	Price        decimal.Decimal `json:"price"`
	OrderCount   int64           `json:"order_count"`
	Source       string          `json:"source"`
}

// ToDishResponses converts ranked dishes to response DTOs
func ToDishResponses(dishes []recommendation.Dish) []DishResponse {
	out := make([]DishResponse, len(dishes))
	for i, d := range dishes {
		out[i] = DishResponse{
			MenuItemID:   d.MenuItemID,
			RestaurantID: d.RestaurantID,
			Name:         d.Name,
			Category:     d.Category,
			ImageURL:     d.ImageURL,
			Veg:          d.Veg,
			Price:        d.Price,
			OrderCount:   d.OrderCount,
			Source:       string(d.Source),
		}
	}
	return out
}
