package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/nexbytes/nexfolio/backend/go-services/pkg/metrics"
)

// fakeToken implements Token
type fakeToken struct {
	data map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	if mm, ok := v.(*map[string]interface{}); ok {
		*mm = t.data
		return nil
	}
	return fmt.Errorf("unsupported claims type")
}

// fakeVerifier implements Verifier
type fakeVerifier struct{}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	if raw == "goodtoken" {
		return &fakeToken{data: map[string]interface{}{"userId": "user1", "email": "test@example.com"}}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) {
		claims, _ := ClaimsFromContext(c.Request.Context())
		fromGin, _ := c.Get(ClaimsKey)
		c.JSON(http.StatusOK, gin.H{"ctx": claims, "gin": fromGin})
	})
	return g
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	g := newAuthRouter(t)
	before := testutil.ToFloat64(metrics.TokenRejected)

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusUnauthorized, rw.Code)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.TokenRejected))
}

func TestAuthMiddleware_InvalidHeader(t *testing.T) {
	g := newAuthRouter(t)
	for _, h := range []string{"BadHeader", "Basic abc", "Bearer ", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", h)
		rw := httptest.NewRecorder()
		g.ServeHTTP(rw, req)
		require.Equal(t, http.StatusUnauthorized, rw.Code, h)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	g := newAuthRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer badtoken")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	require.Equal(t, "invalid token", body["error"])
}

func TestAuthMiddleware_ValidTokenInjectsClaims(t *testing.T) {
	g := newAuthRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	require.Equal(t, "user1", body["ctx"]["userId"])
	require.Equal(t, "test@example.com", body["gin"]["email"])
}

func TestOptional(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/", Optional(false, AuthMiddleware(&fakeVerifier{})), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rw.Code)
}
