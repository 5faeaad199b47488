package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexbytes/nexfolio/backend/go-services/pkg/metrics"
)

// APIKeyHeader is the request header carrying the shared secret.
const APIKeyHeader = "x-api-key"

// APIKeyGate rejects requests under prefix unless the x-api-key header
// matches key exactly. An empty key rejects every request under prefix.
// Paths outside prefix pass through untouched.
func APIKeyGate(prefix, key, contact string) gin.HandlerFunc {
	prefix = "/" + strings.Trim(prefix, "/")
	body := gin.H{"message": "For API KEY Contact - " + contact}
	return func(c *gin.Context) {
		if !underPrefix(c.Request.URL.Path, prefix) {
			c.Next()
			return
		}
		got := c.GetHeader(APIKeyHeader)
		if key == "" || got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			metrics.APIKeyRejected.Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, body)
			return
		}
		c.Next()
	}
}

func underPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
