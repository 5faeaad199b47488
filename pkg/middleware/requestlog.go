package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"

	"github.com/nexbytes/nexfolio/backend/go-services/pkg/logger"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/metrics"
)

// RequestLogger writes one structured line per request and counts it.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()

		lvl := zapcore.InfoLevel
		if status >= 500 {
			lvl = zapcore.ErrorLevel
		}
		if !logger.Enabled(lvl) {
			return
		}
		l := logger.With(
			"method", c.Request.Method,
			"route", route,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
		if lvl == zapcore.ErrorLevel {
			l.Errorw("request")
			return
		}
		l.Infow("request")
	}
}
