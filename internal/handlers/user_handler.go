package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dentist-booking-web/internal/middleware"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context(), middleware.SessionToken(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if users == nil {
		users = make([]models.User, 0)
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), middleware.SessionToken(c), c.Param("uid"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "roles": models.AssignableRoles})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	res, err := h.Users.ChangeRole(c.Request.Context(), middleware.SessionToken(c), c.Param("uid"), req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
