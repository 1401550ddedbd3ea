package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kitchencloud/backend/internal/infrastructure/auth"
	"github.com/kitchencloud/backend/internal/infrastructure/config"
	"github.com/kitchencloud/backend/internal/interfaces/http/dto"
	"github.com/kitchencloud/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var testJWT = auth.NewJWTService(config.JWTConfig{
	Secret:                "test-secret-key-at-least-32-chars",
	Issuer:                "kitchencloud-test",
	AccessTokenExpiration: 15 * time.Minute,
})

// newTestEngine returns an engine that authenticates like the API router
func newTestEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.JWTAuthMiddleware(testJWT))
	return engine
}

func tokenFor(t *testing.T, userID uuid.UUID, role auth.Role) string {
	t.Helper()
	token, _, err := testJWT.GenerateToken(userID, "user@example.com", role)
	require.NoError(t, err)
	return token
}

func doRequest(engine *gin.Engine, method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decode(t, rec)
	require.NotNil(t, resp.Error, rec.Body.String())
	return resp.Error.Code
}
