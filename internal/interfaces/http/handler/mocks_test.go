package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	appaccount "github.com/kitchencloud/backend/internal/application/account"
	appordering "github.com/kitchencloud/backend/internal/application/ordering"
	apprecommendation "github.com/kitchencloud/backend/internal/application/recommendation"
)

type mockPlacer struct {
	mock.Mock
}

func (m *mockPlacer) PlaceOrder(ctx context.Context, req appordering.PlaceOrderRequest) (*appordering.OrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appordering.OrderResponse), args.Error(1)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) GetOrder(ctx context.Context, id uuid.UUID) (*appordering.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appordering.OrderResponse), args.Error(1)
}

func (m *mockLedger) listResult(args mock.Arguments) ([]appordering.OrderResponse, int64, error) {
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]appordering.OrderResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockLedger) ListOrders(ctx context.Context, filter appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error) {
	return m.listResult(m.Called(ctx, filter))
}

func (m *mockLedger) ListAccountOrders(ctx context.Context, accountID uuid.UUID, filter appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error) {
	return m.listResult(m.Called(ctx, accountID, filter))
}

func (m *mockLedger) ListRestaurantOrders(ctx context.Context, restaurantID uuid.UUID, filter appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error) {
	return m.listResult(m.Called(ctx, restaurantID, filter))
}

func (m *mockLedger) ListCourierOrders(ctx context.Context, courierID uuid.UUID, filter appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error) {
	return m.listResult(m.Called(ctx, courierID, filter))
}

func (m *mockLedger) ListAvailableForDelivery(ctx context.Context, filter appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error) {
	return m.listResult(m.Called(ctx, filter))
}

func (m *mockLedger) AssignCourier(ctx context.Context, orderID, courierID uuid.UUID) (*appordering.OrderResponse, error) {
	args := m.Called(ctx, orderID, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appordering.OrderResponse), args.Error(1)
}

func (m *mockLedger) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*appordering.OrderResponse, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appordering.OrderResponse), args.Error(1)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) GetProfile(ctx context.Context, id uuid.UUID) (*appaccount.ProfileResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appaccount.ProfileResponse), args.Error(1)
}

type mockRecommender struct {
	mock.Mock
}

func (m *mockRecommender) Recommend(ctx context.Context, accountID *uuid.UUID) ([]apprecommendation.DishResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]apprecommendation.DishResponse), args.Error(1)
}
