package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dentist-booking-web/internal/catalog"
	"github.com/harentsoaR/dentist-booking-web/internal/middleware"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
	"github.com/harentsoaR/dentist-booking-web/internal/services"
)

const dateLayout = "2006-01-02"

// historyQuery reads the table state, e.g.
// /bookings/history?status=completed&from=2025-06-01&to=2025-06-30&sort=asc&page=2
func (h *Handler) historyQuery(c *gin.Context) (services.HistoryQuery, bool) {
	q := services.HistoryQuery{Search: c.Query("search")}

	if status := strings.ToLower(c.Query("status")); status != "" && status != "all" {
		q.Status = models.BookingStatus(status)
		if !q.Status.Known() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown booking status"})
			return q, false
		}
	}

	for _, bound := range []struct {
		key  string
		into *time.Time
	}{{"from", &q.From}, {"to", &q.To}} {
		raw := c.Query(bound.key)
		if raw == "" {
			continue
		}
		t, err := time.ParseInLocation(dateLayout, raw, h.location)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, use YYYY-MM-DD"})
			return q, false
		}
		*bound.into = t
	}

	if sort := c.Query("sort"); sort != "" {
		q.Sort = catalog.ParseSortOrder(sort)
	}
	q.PageSize, _ = strconv.Atoi(c.Query("pageSize"))
	q.Page, _ = strconv.Atoi(c.Query("page"))
	return q, true
}

func (h *Handler) BookingHistory(c *gin.Context) {
	q, ok := h.historyQuery(c)
	if !ok {
		return
	}
	role := middleware.SessionRole(c)
	q.HideBlocked = role != models.RoleDentist && role != models.RoleAdmin

	page, err := h.Appointments.History(c.Request.Context(), middleware.SessionToken(c), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) PatientHistory(c *gin.Context) {
	q, ok := h.historyQuery(c)
	if !ok {
		return
	}
	page, err := h.Appointments.PatientHistory(c.Request.Context(), middleware.SessionToken(c), c.Param("pid"), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func bindReservation(c *gin.Context) (services.ReservationForm, bool) {
	var form services.ReservationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return form, false
	}
	return form, true
}

func (h *Handler) CreateBooking(c *gin.Context) {
	form, ok := bindReservation(c)
	if !ok {
		return
	}
	res, err := h.Reservations.Create(c.Request.Context(), middleware.SessionToken(c), form)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetBooking(c *gin.Context) {
	booking, err := h.Appointments.Booking(c.Request.Context(), middleware.SessionToken(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// EditBookingForm returns the reservation form prefilled from the booking.
func (h *Handler) EditBookingForm(c *gin.Context) {
	form, err := h.Reservations.LoadForEdit(c.Request.Context(), middleware.SessionToken(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	form, ok := bindReservation(c)
	if !ok {
		return
	}
	res, err := h.Reservations.Edit(c.Request.Context(), middleware.SessionToken(c), c.Param("id"), form)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	n, err := h.Appointments.Delete(c.Request.Context(), middleware.SessionToken(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notice": n})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	res, err := h.Appointments.Cancel(c.Request.Context(), middleware.SessionToken(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	var req struct {
		TreatmentDetail string `json:"treatmentDetail"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	res, err := h.Appointments.Complete(c.Request.Context(), middleware.SessionToken(c), c.Param("id"), req.TreatmentDetail)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ReviewBooking(c *gin.Context) {
	var form services.ReviewForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	n, err := h.Reviews.Submit(c.Request.Context(), middleware.SessionToken(c), c.Param("id"), form)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notice": n})
}
