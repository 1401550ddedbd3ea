package recommendation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLimit caps the number of recommended dishes
const DefaultLimit = 10

// Source tells which ranking a dish came from
type Source string

const (
	SourceFavorite Source = "favorite"
	SourcePopular  Source = "popular"
)

// DishFrequency is a menu item with how often it was ordered
type DishFrequency struct {
	MenuItemID   uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	Category     string
	ImageURL     string
	Veg          bool
	Price        decimal.Decimal
	OrderCount   int64
}

// Dish is one recommended item
type Dish struct {
	DishFrequency
	Source Source
}

// Rank fills up to limit slots with personal favorites first, then globally popular dishes.
// Inputs must already be sorted by frequency; duplicates keep their first position.
func Rank(favorites, popular []DishFrequency, limit int) []Dish {
	if limit <= 0 {
		limit = DefaultLimit
	}
	seen := make(map[uuid.UUID]struct{}, limit)
	out := make([]Dish, 0, limit)

	add := func(list []DishFrequency, src Source) {
		for _, d := range list {
			if len(out) >= limit {
				return
			}
			if _, dup := seen[d.MenuItemID]; dup {
				continue
			}
			seen[d.MenuItemID] = struct{}{}
			out = append(out, Dish{DishFrequency: d, Source: src})
		}
	}
	add(favorites, SourceFavorite)
	add(popular, SourcePopular)
	return out
}
