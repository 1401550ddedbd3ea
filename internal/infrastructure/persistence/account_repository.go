package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/account"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/kitchencloud/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountRepository implements account.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID loads an account with its used coupons
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate locks the account row with SELECT ... FOR UPDATE
func (r *GormAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormAccountRepository) find(db *gorm.DB, id uuid.UUID) (*account.Account, error) {
	var m models.AccountModel
	if err := db.
		Preload("Coupons", func(tx *gorm.DB) *gorm.DB { return tx.Order("code") }).
		First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// Save upserts the account row and inserts coupons that are not stored yet
func (r *GormAccountRepository) Save(ctx context.Context, a *account.Account) error {
	m := models.AccountModelFromDomain(a)
	coupons := m.Coupons
	m.Coupons = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return translateError(err)
		}
		if len(coupons) == 0 {
			return nil
		}
		now := time.Now()
		for i := range coupons {
			coupons[i].CreatedAt = now
		}
		return translateError(tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&coupons).Error)
	})
}

// ClaimCoupon inserts the (account, code) pair. A second claim fails on the primary key.
func (r *GormAccountRepository) ClaimCoupon(ctx context.Context, accountID uuid.UUID, code string) error {
	err := r.db.WithContext(ctx).Create(&models.AccountCouponModel{
		AccountID: accountID,
		Code:      account.NormalizeCouponCode(code),
		CreatedAt: time.Now(),
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrCouponAlreadyUsed
	}
	return translateError(err)
}

// DebitPoints subtracts points only while the balance covers them
func (r *GormAccountRepository) DebitPoints(ctx context.Context, accountID uuid.UUID, points int64) error {
	if points < 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Points to debit cannot be negative")
	}
	result := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("id = ? AND loyalty_points >= ?", accountID, points).
		Updates(map[string]interface{}{
			"loyalty_points": gorm.Expr("loyalty_points - ?", points),
			"version":        gorm.Expr("version + 1"),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missingOr(ctx, accountID, shared.ErrInsufficientPoints)
	}
	return nil
}

// CreditPoints adds points to the balance
func (r *GormAccountRepository) CreditPoints(ctx context.Context, accountID uuid.UUID, points int64) error {
	if points < 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Points to credit cannot be negative")
	}
	result := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"loyalty_points": gorm.Expr("loyalty_points + ?", points),
			"version":        gorm.Expr("version + 1"),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// missingOr returns ErrNotFound when the account does not exist, otherwise fallback
func (r *GormAccountRepository) missingOr(ctx context.Context, id uuid.UUID, fallback error) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AccountModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return fallback
}

var _ account.AccountRepository = (*GormAccountRepository)(nil)
