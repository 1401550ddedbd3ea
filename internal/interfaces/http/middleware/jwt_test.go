package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kitchencloud/backend/internal/infrastructure/auth"
	"github.com/kitchencloud/backend/internal/infrastructure/config"
	"github.com/kitchencloud/backend/internal/infrastructure/logger"
	"github.com/kitchencloud/backend/internal/interfaces/http/dto"
)

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/api/v1/orders", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, auth.RoleCustomer, claims.Role)
		assert.Equal(t, userID.String(), GetJWTUserID(c))

		id, ok := GetJWTUserUUID(c)
		assert.True(t, ok)
		assert.Equal(t, userID, id)
		assert.Equal(t, userID.String(), logger.GetUserID(c.Request.Context()))
		assert.Equal(t, "customer", logger.GetRole(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	rec := serve(router, http.MethodGet, "/api/v1/orders", signToken(t, svc, userID, auth.RoleCustomer))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	svc := newTestJWTService()
	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		Issuer:                "kitchencloud-test",
		AccessTokenExpiration: -time.Minute,
	})
	foreign := auth.NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-of-32-chars!!",
		Issuer:                "kitchencloud-test",
		AccessTokenExpiration: time.Minute,
	})

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"missing header", "", "UNAUTHORIZED"},
		{"not bearer", "Basic abc", "UNAUTHORIZED"},
		{"garbage token", BearerPrefix + "not-a-jwt", dto.ErrCodeTokenInvalid},
		{"expired", BearerPrefix + signToken(t, expired, uuid.New(), auth.RoleCustomer), dto.ErrCodeTokenExpired},
		{"wrong signature", BearerPrefix + signToken(t, foreign, uuid.New(), auth.RoleCustomer), dto.ErrCodeTokenInvalid},
	}

	router := gin.New()
	router.Use(RequestID(), JWTAuthMiddleware(svc))
	router.GET("/api/v1/orders", okHandler)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, rec.Body.Bytes()))
			assert.Contains(t, rec.Body.String(), `"request_id"`)
		})
	}
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuthMiddleware(newTestJWTService()))
	router.GET("/health", okHandler)
	router.GET("/api/v1/recommendations/:accountId", okHandler)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/recommendations/"+uuid.NewString(), "").Code)
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	router := gin.New()
	router.Use(OptionalJWTAuthMiddleware(svc))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetJWTUserID(c))
	})

	assert.Equal(t, "", serve(router, http.MethodGet, "/test", "").Body.String())
	assert.Equal(t, "", serve(router, http.MethodGet, "/test", "bogus").Body.String())
	assert.Equal(t, userID.String(), serve(router, http.MethodGet, "/test", signToken(t, svc, userID, auth.RoleAdmin)).Body.String())
}

func TestJWTAuthMiddleware_RequestLogCarriesUser(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := newTestJWTService()
	userID := uuid.New()

	router := gin.New()
	router.Use(RequestID(), logger.GinMiddleware(zap.New(core)), JWTAuthMiddleware(svc))
	router.GET("/api/v1/orders", okHandler)

	rec := serve(router, http.MethodGet, "/api/v1/orders", signToken(t, svc, userID, auth.RoleDelivery))
	require.Equal(t, http.StatusOK, rec.Code)

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, userID.String(), fields["user_id"])
	assert.Equal(t, "delivery", fields["role"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), fields["request_id"])
}
