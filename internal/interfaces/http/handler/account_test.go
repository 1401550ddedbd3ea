package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appaccount "github.com/kitchencloud/backend/internal/application/account"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/kitchencloud/backend/internal/infrastructure/auth"
)

func TestAccountHandler_GetAccount(t *testing.T) {
	me := uuid.New()

	tests := []struct {
		name       string
		caller     uuid.UUID
		role       auth.Role
		target     uuid.UUID
		wantStatus int
	}{
		{"self", me, auth.RoleCustomer, me, http.StatusOK},
		{"admin reads anyone", uuid.New(), auth.RoleAdmin, me, http.StatusOK},
		{"other customer", uuid.New(), auth.RoleCustomer, me, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := new(mockProfiles)
			profiles.On("GetProfile", mock.Anything, me).Return(&appaccount.ProfileResponse{
				ID:            me,
				Name:          "Asha",
				LoyaltyPoints: 120,
				UsedCoupons:   []string{"WELCOME50"},
			}, nil)
			engine := newTestEngine()
			engine.GET("/api/v1/accounts/:id", NewAccountHandler(profiles).GetAccount)

			rec := doRequest(engine, http.MethodGet, "/api/v1/accounts/"+tt.target.String(), tokenFor(t, tt.caller, tt.role), nil)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				data := decode(t, rec).Data.(map[string]any)
				assert.EqualValues(t, 120, data["loyalty_points"])
				assert.Equal(t, []any{"WELCOME50"}, data["used_coupons"])
			}
		})
	}
}

func TestAccountHandler_GetAccount_NotFound(t *testing.T) {
	me := uuid.New()
	profiles := new(mockProfiles)
	profiles.On("GetProfile", mock.Anything, me).Return(nil, shared.NewNotFoundError("account", me))
	engine := newTestEngine()
	engine.GET("/api/v1/accounts/:id", NewAccountHandler(profiles).GetAccount)

	rec := doRequest(engine, http.MethodGet, "/api/v1/accounts/"+me.String(), tokenFor(t, me, auth.RoleCustomer), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
