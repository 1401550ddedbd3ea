package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/account"
)

// AccountModel is the persistence model for customer accounts
type AccountModel struct {
	AggregateModel
	Name          string               `gorm:"type:varchar(100);not null"`
	Email         string               `gorm:"type:varchar(255);uniqueIndex"`
	Phone         string               `gorm:"type:varchar(30)"`
	Address       string               `gorm:"type:text"`
	LoyaltyPoints int64                `gorm:"not null;default:0;check:chk_accounts_loyalty_points,loyalty_points >= 0"`
	Coupons       []AccountCouponModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// AccountCouponModel records one redeemed coupon. The composite key is the redemption guard.
type AccountCouponModel struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code      string    `gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountCouponModel) TableName() string {
	return "account_coupons"
}

// ToDomain converts the model and its loaded coupons to a domain Account
func (m *AccountModel) ToDomain() *account.Account {
	codes := make([]string, len(m.Coupons))
	for i, c := range m.Coupons {
		codes[i] = c.Code
	}
	return account.Rehydrate(m.AggregateRoot(), m.Name, m.Email, m.Phone, m.Address, m.LoyaltyPoints, codes)
}

// AccountModelFromDomain maps a domain Account, coupons included
func AccountModelFromDomain(a *account.Account) *AccountModel {
	m := &AccountModel{
		Name:          a.Name,
		Email:         a.Email,
		Phone:         a.Phone,
		Address:       a.Address,
		LoyaltyPoints: a.LoyaltyPoints,
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	for _, code := range a.UsedCoupons() {
		m.Coupons = append(m.Coupons, AccountCouponModel{AccountID: a.ID, Code: code})
	}
	return m
}
