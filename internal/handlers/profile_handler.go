package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dentist-booking-web/internal/middleware"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
	"github.com/harentsoaR/dentist-booking-web/internal/services"
)

// GetProfile is the signed-in dentist's own profile with rating statistics.
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.Profiles.View(c.Request.Context(), middleware.SessionToken(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) GetProfileEdit(c *gin.Context) {
	session, err := h.Profiles.Load(c.Request.Context(), middleware.SessionToken(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"dentistId":        session.DentistID,
		"form":             session.Original,
		"expertiseOptions": models.ExpertiseOptions,
	})
}

// UpdateProfile reloads the saved profile as the snapshot, then saves the
// submitted form against it.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var form services.ProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	token := middleware.SessionToken(c)
	session, err := h.Profiles.Load(ctx, token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	n, err := h.Profiles.Save(ctx, token, session, form)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notice": n})
}
