package account

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kitchencloud/backend/internal/domain/shared"
)

// Account is a customer account holding a loyalty balance and the coupons it has redeemed.
type Account struct {
	shared.BaseAggregateRoot
	Name          string
	Email         string
	Phone         string
	Address       string
	LoyaltyPoints int64
	usedCoupons   map[string]struct{}
}

// NewAccount creates an account with an empty balance
func NewAccount(name, email string) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Account name cannot be empty")
	}
	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		usedCoupons:       make(map[string]struct{}),
	}, nil
}

// Rehydrate rebuilds an account from stored state.
// Coupon codes are normalized on the way in.
func Rehydrate(root shared.BaseAggregateRoot, name, email, phone, address string, points int64, coupons []string) *Account {
	a := &Account{
		BaseAggregateRoot: root,
		Name:              name,
		Email:             email,
		Phone:             phone,
		Address:           address,
		LoyaltyPoints:     points,
		usedCoupons:       make(map[string]struct{}, len(coupons)),
	}
	for _, c := range coupons {
		if code := NormalizeCouponCode(c); code != "" {
			a.usedCoupons[code] = struct{}{}
		}
	}
	return a
}

// HasUsedCoupon reports whether the account already redeemed the code (any case, any padding)
func (a *Account) HasUsedCoupon(code string) bool {
	_, ok := a.usedCoupons[NormalizeCouponCode(code)]
	return ok
}

// UsedCoupons returns the redeemed coupon codes in sorted order
func (a *Account) UsedCoupons() []string {
	codes := make([]string, 0, len(a.usedCoupons))
	for c := range a.usedCoupons {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// ClaimCoupon records the coupon as used and returns its normalized form.
// A code the account already holds fails with COUPON_ALREADY_USED.
func (a *Account) ClaimCoupon(raw string) (string, error) {
	code := NormalizeCouponCode(raw)
	if code == "" {
		return "", shared.NewDomainError(shared.CodeInvalidInput, "Coupon code cannot be empty")
	}
	if _, used := a.usedCoupons[code]; used {
		return "", shared.NewDomainError(shared.CodeCouponAlreadyUsed, fmt.Sprintf("Coupon %s already used", code))
	}
	if a.usedCoupons == nil {
		a.usedCoupons = make(map[string]struct{})
	}
	a.usedCoupons[code] = struct{}{}
	a.Touch()
	a.IncrementVersion()
	a.AddDomainEvent(NewCouponRedeemedEvent(a, code))
	return code, nil
}

// RedeemPoints debits the loyalty balance
func (a *Account) RedeemPoints(points int64) error {
	if points < 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Points to redeem cannot be negative")
	}
	if points == 0 {
		return nil
	}
	if a.LoyaltyPoints < points {
		return shared.NewDomainError(shared.CodeInsufficientPoints,
			fmt.Sprintf("Insufficient loyalty points: have %d, requested %d", a.LoyaltyPoints, points))
	}

	old := a.LoyaltyPoints
	a.LoyaltyPoints -= points
	a.Touch()
	a.IncrementVersion()
	a.AddDomainEvent(NewLoyaltyPointsChangedEvent(a, old, PointsReasonRedeemed))
	return nil
}

// CreditPoints adds earned points to the loyalty balance
func (a *Account) CreditPoints(points int64) error {
	if points < 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Points to credit cannot be negative")
	}
	if points == 0 {
		return nil
	}

	old := a.LoyaltyPoints
	a.LoyaltyPoints += points
	a.Touch()
	a.IncrementVersion()
	a.AddDomainEvent(NewLoyaltyPointsChangedEvent(a, old, PointsReasonEarned))
	return nil
}

// NormalizeCouponCode trims whitespace and upper-cases a coupon code
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
