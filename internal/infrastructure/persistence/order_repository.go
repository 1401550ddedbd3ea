package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/ordering"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/kitchencloud/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// orderSortColumns are the columns a listing may sort by
var orderSortColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"status":       true,
	"total_amount": true,
}

// orderSort builds the ORDER BY for a listing. Unknown columns fall back to
// created_at, anything but "asc" sorts descending, and id breaks ties so
// pages stay stable.
func orderSort(f shared.Filter) clause.OrderBy {
	column := strings.TrimSpace(f.OrderBy)
	if !orderSortColumns[column] {
		column = "created_at"
	}
	desc := !strings.EqualFold(strings.TrimSpace(f.OrderDir), "asc")
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: column}, Desc: desc},
		{Column: clause.Column{Name: "id"}},
	}}
}

func preloadItems(tx *gorm.DB) *gorm.DB {
	return tx.Order("position ASC")
}

// FindByID loads an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate locks the order row until the transaction ends
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) find(db *gorm.DB, id uuid.UUID) (*ordering.Order, error) {
	var m models.OrderModel
	if err := db.Preload("Items", preloadItems).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// Find lists orders page by page, newest first unless another sort is requested
func (r *GormOrderRepository) Find(ctx context.Context, q ordering.OrderQuery) ([]ordering.Order, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if q.AccountID != nil {
		base = base.Where("account_id = ?", *q.AccountID)
	}
	if q.RestaurantID != nil {
		base = base.Where("restaurant_id = ?", *q.RestaurantID)
	}
	if q.CourierID != nil {
		base = base.Where("courier_id = ?", *q.CourierID)
	}
	if q.Unassigned {
		base = base.Where("courier_id IS NULL")
	}
	if q.Status != nil {
		base = base.Where("status = ?", string(*q.Status))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	page := q.Filter.Normalized()
	var rows []models.OrderModel
	if err := base.
		Preload("Items", preloadItems).
		Order(orderSort(page)).
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, translateError(err)
	}

	orders := make([]ordering.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

// Create inserts the order row and all of its items
func (r *GormOrderRepository) Create(ctx context.Context, order *ordering.Order) error {
	if len(order.Items) == 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Order must contain at least one item")
	}
	m := models.OrderModelFromDomain(order)
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(m).Error; err != nil {
			return err
		}
		return tx.Create(&m.Items).Error
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.WrapDomainError(shared.CodeAlreadyExists, "Order already exists", err)
		}
		return translateError(err)
	}
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return nil
}

// Update persists the mutable columns: status and courier
func (r *GormOrderRepository) Update(ctx context.Context, order *ordering.Order) error {
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = time.Now()
	}
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":     string(order.Status),
			"courier_id": order.CourierID,
			"version":    order.Version,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
