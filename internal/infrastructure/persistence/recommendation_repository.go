package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/recommendation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormFrequencyRepository ranks menu items by the number of order lines referencing them
type GormFrequencyRepository struct {
	db *gorm.DB
}

// NewGormFrequencyRepository creates a new GormFrequencyRepository
func NewGormFrequencyRepository(db *gorm.DB) *GormFrequencyRepository {
	return &GormFrequencyRepository{db: db}
}

type dishFrequencyRow struct {
	MenuItemID   uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	Category     string
	ImageURL     string
	Veg          bool
	Price        decimal.Decimal
	OrderCount   int64
}

// TopForAccount ranks the dishes the account ordered most often
func (r *GormFrequencyRepository) TopForAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]recommendation.DishFrequency, error) {
	q := r.base(ctx).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.account_id = ?", accountID)
	return r.scan(q, limit)
}

// TopGlobal ranks dishes across all accounts
func (r *GormFrequencyRepository) TopGlobal(ctx context.Context, limit int) ([]recommendation.DishFrequency, error) {
	return r.scan(r.base(ctx), limit)
}

func (r *GormFrequencyRepository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select("mi.id AS menu_item_id, mi.restaurant_id, mi.name, mi.category, mi.image_url, mi.veg, mi.price, COUNT(oi.id) AS order_count").
		Joins("JOIN menu_items mi ON mi.id = oi.menu_item_id").
		Where("mi.deleted = ?", false)
}

func (r *GormFrequencyRepository) scan(q *gorm.DB, limit int) ([]recommendation.DishFrequency, error) {
	if limit <= 0 {
		limit = recommendation.DefaultLimit
	}
	var rows []dishFrequencyRow
	if err := q.
		Group("mi.id, mi.restaurant_id, mi.name, mi.category, mi.image_url, mi.veg, mi.price").
		Order("order_count DESC").
		Order("mi.name ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	out := make([]recommendation.DishFrequency, len(rows))
	for i, row := range rows {
		out[i] = recommendation.DishFrequency(row)
	}
	return out, nil
}

var _ recommendation.FrequencyRepository = (*GormFrequencyRepository)(nil)
