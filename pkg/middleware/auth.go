package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexbytes/nexfolio/backend/go-services/pkg/logger"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/metrics"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// ClaimsKey is the gin context key holding the verified claims map.
const ClaimsKey = "claims"

type claimsCtxKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims map[string]interface{}) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, claims)
}

// ClaimsFromContext returns the claims injected by AuthMiddleware, if any.
func ClaimsFromContext(ctx context.Context) (map[string]interface{}, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(map[string]interface{})
	return claims, ok
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier.
// Verified claims are available both via c.Get(ClaimsKey) and ClaimsFromContext(c.Request.Context()).
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := strings.TrimSpace(c.GetHeader("Authorization"))
		if auth == "" {
			reject(c, "missing Authorization header")
			return
		}
		scheme, raw, ok := strings.Cut(auth, " ")
		raw = strings.TrimSpace(raw)
		if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
			reject(c, "invalid Authorization header")
			return
		}

		tok, err := ver.Verify(c.Request.Context(), raw)
		if err != nil {
			logger.Debugf("token rejected: %v", err)
			reject(c, "invalid token")
			return
		}

		var claims map[string]interface{}
		if err := tok.Claims(&claims); err != nil {
			reject(c, "failed to parse claims")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func reject(c *gin.Context, msg string) {
	metrics.TokenRejected.Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// Optional wraps mw so it only runs when enabled is true.
func Optional(enabled bool, mw gin.HandlerFunc) gin.HandlerFunc {
	if enabled {
		return mw
	}
	return func(c *gin.Context) { c.Next() }
}
