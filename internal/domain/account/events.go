package account

import (
	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/shared"
)

// AggregateTypeAccount is the aggregate type for account events
const AggregateTypeAccount = "Account"

// Event type constants
const (
	EventTypeCouponRedeemed       = "CouponRedeemed"
	EventTypeLoyaltyPointsChanged = "LoyaltyPointsChanged"
)

// PointsReason explains a loyalty balance movement
type PointsReason string

const (
	PointsReasonRedeemed PointsReason = "redeemed"
	PointsReasonEarned   PointsReason = "earned"
)

// CouponRedeemedEvent is raised when an account claims a coupon code
type CouponRedeemedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID `json:"account_id"`
	Code      string    `json:"code"`
}

// NewCouponRedeemedEvent creates a new CouponRedeemedEvent
func NewCouponRedeemedEvent(a *Account, code string) *CouponRedeemedEvent {
	return &CouponRedeemedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCouponRedeemed, AggregateTypeAccount, a.ID),
		AccountID:       a.ID,
		Code:            code,
	}
}

// LoyaltyPointsChangedEvent is raised on every balance movement
type LoyaltyPointsChangedEvent struct {
	shared.BaseDomainEvent
	AccountID  uuid.UUID    `json:"account_id"`
	OldBalance int64        `json:"old_balance"`
	NewBalance int64        `json:"new_balance"`
	Reason     PointsReason `json:"reason"`
}

// NewLoyaltyPointsChangedEvent creates a new LoyaltyPointsChangedEvent
func NewLoyaltyPointsChangedEvent(a *Account, oldBalance int64, reason PointsReason) *LoyaltyPointsChangedEvent {
	return &LoyaltyPointsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoyaltyPointsChanged, AggregateTypeAccount, a.ID),
		AccountID:       a.ID,
		OldBalance:      oldBalance,
		NewBalance:      a.LoyaltyPoints,
		Reason:          reason,
	}
}
