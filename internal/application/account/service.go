package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/account"
	"github.com/kitchencloud/backend/internal/domain/shared"
)

// ProfileResponse is the outbound view of an account
type ProfileResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	LoyaltyPoints int64     `json:"loyalty_points"`
	UsedCoupons   []string  `json:"used_coupons"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToProfileResponse converts a domain Account to its response DTO
func ToProfileResponse(a *account.Account) ProfileResponse {
	return ProfileResponse{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Phone:         a.Phone,
		Address:       a.Address,
		LoyaltyPoints: a.LoyaltyPoints,
		UsedCoupons:   a.UsedCoupons(),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// Service exposes read access to customer accounts
type Service struct {
	accountRepo account.AccountRepository
}

// NewService creates a new account Service
func NewService(accountRepo account.AccountRepository) *Service {
	return &Service{accountRepo: accountRepo}
}

// GetProfile returns the account with its loyalty balance and redeemed coupons
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileResponse, error) {
	acct, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		var domainErr *shared.DomainError
		switch {
		case errors.Is(err, shared.ErrNotFound):
			return nil, shared.NewNotFoundError("account", id)
		case errors.As(err, &domainErr):
			return nil, err
		default:
			return nil, shared.NewPersistenceError("load account", err)
		}
	}
	resp := ToProfileResponse(acct)
	return &resp, nil
}
