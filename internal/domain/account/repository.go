package account

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines persistence for customer accounts
type AccountRepository interface {
	// FindByID loads an account together with its used coupons
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByIDForUpdate loads an account and holds a row lock until the surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)

	// Save creates or updates the account row and inserts any coupons not yet stored
	Save(ctx context.Context, account *Account) error

	// ClaimCoupon stores a normalized coupon code for the account.
	// Returns COUPON_ALREADY_USED if the (account, code) pair already exists.
	ClaimCoupon(ctx context.Context, accountID uuid.UUID, code string) error

	// DebitPoints subtracts points only if the balance covers them.
	// Returns INSUFFICIENT_POINTS otherwise.
	DebitPoints(ctx context.Context, accountID uuid.UUID, points int64) error

	// CreditPoints adds points to the balance
	CreditPoints(ctx context.Context, accountID uuid.UUID, points int64) error
}
