package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
)

func (a *API) listFeedbacks(c *gin.Context) {
	list, err := a.Feedbacks.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch feedbacks")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) getFeedback(c *gin.Context) {
	f, err := a.Feedbacks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch feedback")
		return
	}
	c.JSON(http.StatusOK, f)
}

func (a *API) createFeedback(c *gin.Context) {
	var in models.FeedbackInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}
	f, err := a.Feedbacks.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create feedback")
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (a *API) updateFeedback(c *gin.Context) {
	var in models.FeedbackInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}
	f, err := a.Feedbacks.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Failed to update feedback")
		return
	}
	c.JSON(http.StatusOK, f)
}

func (a *API) deleteFeedback(c *gin.Context) {
	if err := a.Feedbacks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete feedback")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
