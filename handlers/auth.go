package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/logger"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/metrics"
)

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (a *API) login(c *gin.Context) {
	var in models.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		badBody(c)
		return
	}

	u, err := a.Users.Authenticate(c.Request.Context(), in)
	if err != nil {
		switch {
		case apperr.IsCode(err, apperr.CodeUnauthorized):
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		case apperr.IsCode(err, apperr.CodeValidation):
			metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		default:
			metrics.LoginAttempts.WithLabelValues("error").Inc()
		}
		respondError(c, err, "Login failed")
		return
	}

	token, err := a.Tokens.Issue(u.ID.Hex(), u.Email)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		respondError(c, err, "Login failed")
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Debugf("login ok for user %s", u.ID.Hex())

	c.JSON(http.StatusOK, LoginResponse{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Token: token})
}
