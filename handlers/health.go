package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexbytes/nexfolio/backend/go-services/pkg/logger"
)

// Check probes one dependency for readiness.
type Check func(ctx context.Context) error

// RegisterHealth mounts /health (liveness) and /ready (dependency probes).
func RegisterHealth(r gin.IRoutes, started time.Time, checks map[string]Check) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		deps := make(map[string]bool, len(checks))
		for name, check := range checks {
			err := check(ctx)
			deps[name] = err == nil
			if err != nil {
				ready = false
				logger.Warnf("readiness: %s unavailable: %v", name, err)
			}
		}

		uptime := time.Since(started).Round(time.Second).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
