package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/kitchencloud/backend/internal/infrastructure/logger"
	"github.com/kitchencloud/backend/internal/interfaces/http/dto"
	"github.com/kitchencloud/backend/internal/interfaces/http/middleware"
)

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*gin.Context)
		expected string
	}{
		{
			name:     "from middleware key",
			setup:    func(c *gin.Context) { c.Set(middleware.RequestIDKey, "ctx-id") },
			expected: "ctx-id",
		},
		{
			name:     "from header when key empty",
			setup:    func(c *gin.Context) { c.Request.Header.Set(middleware.RequestIDHeader, "header-id") },
			expected: "header-id",
		},
		{
			name: "key takes precedence",
			setup: func(c *gin.Context) {
				c.Set(middleware.RequestIDKey, "ctx-id")
				c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
			},
			expected: "ctx-id",
		},
		{
			name:     "empty when not set",
			setup:    func(*gin.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(c)
			assert.Equal(t, tt.expected, getRequestID(c))
		})
	}
}

func TestHandleDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.NewNotFoundError("order", "x"), http.StatusNotFound, shared.CodeNotFound},
		{"coupon reused", shared.NewDomainError(shared.CodeCouponAlreadyUsed, "used"), http.StatusConflict, shared.CodeCouponAlreadyUsed},
		{"points", shared.NewDomainError(shared.CodeInsufficientPoints, "short"), http.StatusUnprocessableEntity, shared.CodeInsufficientPoints},
		{"item unavailable", shared.NewDomainError(shared.CodeItemUnavailable, "gone"), http.StatusUnprocessableEntity, shared.CodeItemUnavailable},
		{"duplicate", shared.NewDomainError(shared.CodeDuplicateRequest, "again"), http.StatusConflict, shared.CodeDuplicateRequest},
		{"invalid input", shared.ErrInvalidInput, http.StatusBadRequest, shared.CodeInvalidInput},
		{"persistence", shared.NewPersistenceError("save order", errors.New("boom")), http.StatusInternalServerError, shared.CodePersistenceFailure},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set(middleware.RequestIDKey, "req-1")

			h := &BaseHandler{}
			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decode(t, rec)
			require.NotNil(t, resp.Error)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}
}

func TestHandleDomainError_HidesUnexpectedErrors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request = req.WithContext(logger.WithContext(req.Context(), zap.New(core)))

	h := &BaseHandler{}
	h.HandleDomainError(c, errors.New("pq: connection refused"))

	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Equal(t, 1, logs.FilterMessage("unexpected error").Len())
}

func TestPage(t *testing.T) {
	engine := gin.New()
	h := &BaseHandler{}
	var got dto.ListRequest
	engine.GET("/list", func(c *gin.Context) {
		page, ok := h.page(c)
		if !ok {
			return
		}
		got = page
		h.Success(c, nil)
	})

	rec := doRequest(engine, http.MethodGet, "/list", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 20, got.PageSize)
	assert.Equal(t, "created_at", got.OrderBy)
	assert.Equal(t, "desc", got.OrderDir)

	rec = doRequest(engine, http.MethodGet, "/list?page=3&page_size=50&status=PLACED&order_dir=asc", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 50, got.PageSize)
	assert.Equal(t, "PLACED", got.Status)
	assert.Equal(t, "asc", got.OrderDir)

	rec = doRequest(engine, http.MethodGet, "/list?page_size=500", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrCodeValidation, errorCode(t, rec))
}

func TestUUIDParam(t *testing.T) {
	engine := gin.New()
	h := &BaseHandler{}
	engine.GET("/orders/:id", func(c *gin.Context) {
		if _, ok := h.uuidParam(c, "id"); ok {
			h.Success(c, nil)
		}
	})

	rec := doRequest(engine, http.MethodGet, "/orders/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, shared.CodeInvalidInput, errorCode(t, rec))

	rec = doRequest(engine, http.MethodGet, "/orders/6f1b6c0e-8d4a-4a39-9b6e-3f0f7c2d1a10", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
