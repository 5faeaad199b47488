package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
)

func (a *API) listBlogs(c *gin.Context) {
	list, err := a.Blogs.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch blogs")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) getBlog(c *gin.Context) {
	b, err := a.Blogs.Get(c.Request.Context(), c.Param("slugOrId"))
	if err != nil {
		respondError(c, err, "Failed to fetch blog")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (a *API) createBlog(c *gin.Context) {
	var in models.BlogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}
	b, err := a.Blogs.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create blog")
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (a *API) updateBlog(c *gin.Context) {
	var in models.BlogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}
	b, err := a.Blogs.Update(c.Request.Context(), c.Param("slugOrId"), in)
	if err != nil {
		respondError(c, err, "Failed to update blog")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (a *API) deleteBlog(c *gin.Context) {
	if err := a.Blogs.Delete(c.Request.Context(), c.Param("slugOrId")); err != nil {
		respondError(c, err, "Failed to delete blog")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully"})
}
