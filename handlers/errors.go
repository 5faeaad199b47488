package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/logger"
)

var statusByCode = map[apperr.Code]int{
	apperr.CodeValidation:   http.StatusBadRequest,
	apperr.CodeNotFound:     http.StatusNotFound,
	apperr.CodeUnauthorized: http.StatusUnauthorized,
}

// respondError maps typed errors to their status and message. Anything else
// is logged and reported as a generic 500 carrying fallback.
func respondError(c *gin.Context, err error, fallback string) {
	if typed, ok := apperr.AsError(err); ok {
		if status, known := statusByCode[typed.Code]; known {
			c.JSON(status, gin.H{"error": typed.Message})
			return
		}
	}
	logger.With("route", c.FullPath(), "method", c.Request.Method).Errorf("%s: %v", fallback, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}
