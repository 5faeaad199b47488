package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
)

func (a *API) listUsers(c *gin.Context) {
	list, err := a.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) getUser(c *gin.Context) {
	u, err := a.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (a *API) createUser(c *gin.Context) {
	var in models.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}
	u, err := a.Users.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (a *API) updateUser(c *gin.Context) {
	var in models.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}
	u, err := a.Users.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (a *API) deleteUser(c *gin.Context) {
	if err := a.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
