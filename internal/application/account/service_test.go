package account

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/account"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) ClaimCoupon(ctx context.Context, accountID uuid.UUID, code string) error {
	return m.Called(ctx, accountID, code).Error(0)
}

func (m *MockAccountRepository) DebitPoints(ctx context.Context, accountID uuid.UUID, points int64) error {
	return m.Called(ctx, accountID, points).Error(0)
}

func (m *MockAccountRepository) CreditPoints(ctx context.Context, accountID uuid.UUID, points int64) error {
	return m.Called(ctx, accountID, points).Error(0)
}

func TestGetProfile(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := NewService(repo)

	acct := account.Rehydrate(shared.NewBaseAggregateRoot(), "Ravi", "ravi@example.com", "", "", 75,
		[]string{"welcome", "FLAT50"})
	repo.On("FindByID", mock.Anything, acct.ID).Return(acct, nil)

	resp, err := svc.GetProfile(context.Background(), acct.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(75), resp.LoyaltyPoints)
	assert.Equal(t, []string{"FLAT50", "WELCOME"}, resp.UsedCoupons)
}

func TestGetProfile_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewService(repo)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetProfile(context.Background(), id)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.Contains(t, err.Error(), id.String())
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewService(repo)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, errors.New("conn refused"))

		_, err := svc.GetProfile(context.Background(), id)
		assert.True(t, errors.Is(err, shared.ErrPersistenceFailure))
	})
}
