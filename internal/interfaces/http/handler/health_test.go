package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okPing(context.Context) error   { return nil }
func downPing(context.Context) error { return errors.New("connection refused") }

func newHealthEngine(h *HealthHandler) *gin.Engine {
	engine := newTestEngine()
	engine.GET("/health", h.Health)
	engine.GET("/health/ready", h.Ready)
	return engine
}

func TestHealthHandler_Health(t *testing.T) {
	rec := doRequest(newHealthEngine(NewHealthHandler(PingFunc(okPing))), http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["database"])

	rec = doRequest(newHealthEngine(NewHealthHandler(PingFunc(downPing))), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name       string
		db         PingFunc
		redis      PingFunc
		wantStatus int
		wantChecks map[string]any
	}{
		{"all up", okPing, okPing, http.StatusOK, map[string]any{"database": "ok", "redis": "ok"}},
		{"redis down", okPing, downPing, http.StatusServiceUnavailable, map[string]any{"database": "ok", "redis": "error"}},
		{"database down", downPing, okPing, http.StatusServiceUnavailable, map[string]any{"database": "error", "redis": "ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db).AddCheck("redis", tt.redis)

			rec := doRequest(newHealthEngine(h), http.MethodGet, "/health/ready", "", nil)

			require.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantChecks, body["checks"])
		})
	}
}
