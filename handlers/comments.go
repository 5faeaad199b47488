package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
)

func (a *API) listComments(c *gin.Context) {
	list, err := a.Comments.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch comments")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) getComment(c *gin.Context) {
	cm, err := a.Comments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch comment")
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (a *API) createComment(c *gin.Context) {
	var in models.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}
	cm, err := a.Comments.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create comment")
		return
	}
	c.JSON(http.StatusCreated, cm)
}

func (a *API) updateComment(c *gin.Context) {
	var in models.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}
	cm, err := a.Comments.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Failed to update comment")
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (a *API) deleteComment(c *gin.Context) {
	if err := a.Comments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete comment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
