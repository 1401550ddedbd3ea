package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kitchencloud/backend/internal/domain/shared"
)

func TestGormAccountRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	acct := seedAccount(t, db, 120, "feast50", " WELCOME ")

	got, err := repo.FindByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), got.LoyaltyPoints)
	assert.Equal(t, []string{"FEAST50", "WELCOME"}, got.UsedCoupons())

	// Saving again keeps the stored coupons and adds new ones
	_, err = got.ClaimCoupon("monsoon")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, got))

	again, err := repo.FindByIDForUpdate(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"FEAST50", "MONSOON", "WELCOME"}, again.UsedCoupons())
}

func TestGormAccountRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormAccountRepository(newTestDB(t))
	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestGormAccountRepository_ClaimCoupon(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	acct := seedAccount(t, db, 0)

	require.NoError(t, repo.ClaimCoupon(ctx, acct.ID, "feast50"))

	err := repo.ClaimCoupon(ctx, acct.ID, "  FEAST50")
	assert.True(t, errors.Is(err, shared.ErrCouponAlreadyUsed))

	// Another account may use the same code
	other := seedAccount(t, db, 0)
	assert.NoError(t, repo.ClaimCoupon(ctx, other.ID, "FEAST50"))
}

func TestGormAccountRepository_DebitPoints(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	acct := seedAccount(t, db, 50)

	require.NoError(t, repo.DebitPoints(ctx, acct.ID, 30))

	err := repo.DebitPoints(ctx, acct.ID, 21)
	assert.True(t, errors.Is(err, shared.ErrInsufficientPoints))

	err = repo.DebitPoints(ctx, uuid.New(), 1)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	err = repo.DebitPoints(ctx, acct.ID, -1)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	got, err := repo.FindByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got.LoyaltyPoints)
	assert.Equal(t, acct.Version+1, got.Version)
}

func TestGormAccountRepository_CreditPoints(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	acct := seedAccount(t, db, 5)

	require.NoError(t, repo.CreditPoints(ctx, acct.ID, 45))
	got, err := repo.FindByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), got.LoyaltyPoints)

	assert.True(t, errors.Is(repo.CreditPoints(ctx, uuid.New(), 1), shared.ErrNotFound))
}

func TestGormAccountRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "loyalty_points", "version", "created_at", "updated_at"}).
			AddRow(id.String(), "Asha", "asha@example.com", 80, 3, now, now))
	mock.ExpectQuery(`SELECT \* FROM "account_coupons" WHERE "account_coupons"."account_id" = \$1 ORDER BY code`).
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "code", "created_at"}).
			AddRow(id.String(), "FEAST50", now))

	got, err := NewGormAccountRepository(db).FindByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(80), got.LoyaltyPoints)
	assert.True(t, got.HasUsedCoupon("feast50"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
