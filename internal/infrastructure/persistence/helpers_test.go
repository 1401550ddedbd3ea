package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kitchencloud/backend/internal/domain/account"
	"github.com/kitchencloud/backend/internal/domain/catalog"
	"github.com/kitchencloud/backend/internal/infrastructure/persistence/models"
)

// newTestDB opens a private shared-cache in-memory database. One connection
// serializes concurrent transactions the way a row lock would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.AccountModel{},
		&models.AccountCouponModel{},
		&models.RestaurantModel{},
		&models.MenuItemModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
	))
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, points int64, coupons ...string) *account.Account {
	t.Helper()
	acct, err := account.NewAccount("Asha", fmt.Sprintf("asha+%s@example.com", uuid.NewString()[:8]))
	require.NoError(t, err)
	acct = account.Rehydrate(acct.BaseAggregateRoot, acct.Name, acct.Email, "", "", points, coupons)
	require.NoError(t, NewGormAccountRepository(db).Save(context.Background(), acct))
	return acct
}

func seedRestaurant(t *testing.T, db *gorm.DB, house bool) *catalog.Restaurant {
	t.Helper()
	var (
		r   *catalog.Restaurant
		err error
	)
	if house {
		r, err = catalog.NewHouseRestaurant(catalog.HouseRestaurantName)
	} else {
		r, err = catalog.NewRestaurant("Spice Route", "Meera")
	}
	require.NoError(t, err)
	require.NoError(t, NewGormRestaurantRepository(db).Save(context.Background(), r))
	return r
}

func seedMenuItem(t *testing.T, db *gorm.DB, restaurantID uuid.UUID, name string, price int64) *catalog.MenuItem {
	t.Helper()
	item, err := catalog.NewMenuItem(restaurantID, name, decimal.NewFromInt(price))
	require.NoError(t, err)
	require.NoError(t, NewGormMenuItemRepository(db).Save(context.Background(), item))
	return item
}
