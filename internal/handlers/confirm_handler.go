package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dentist-booking-web/internal/services"
)

// GetConfirmation renders the page behind a confirmation link. No session is needed.
func (h *Handler) GetConfirmation(c *gin.Context) {
	view, err := h.Confirmations.Load(c.Request.Context(), c.Param("bid"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ConfirmBooking presses the confirm button. A failed confirm returns the
// view in its error state so the page can offer a retry.
func (h *Handler) ConfirmBooking(c *gin.Context) {
	ctx := c.Request.Context()
	view, err := h.Confirmations.Load(ctx, c.Param("bid"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Confirmations.Confirm(ctx, view)
	status := http.StatusOK
	if view.State == services.ConfirmError {
		status = http.StatusBadGateway
	}
	c.JSON(status, view)
}
