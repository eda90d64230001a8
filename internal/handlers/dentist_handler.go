package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dentist-booking-web/internal/catalog"
	"github.com/harentsoaR/dentist-booking-web/internal/middleware"
	"github.com/harentsoaR/dentist-booking-web/internal/services"
)

// ListDentists serves the catalog, e.g. /dentists?search=lee&expertise=Orthodontics&sort=desc
func (h *Handler) ListDentists(c *gin.Context) {
	compare, _ := strconv.ParseBool(c.Query("compare"))
	q := services.CatalogQuery{
		Search:      c.Query("search"),
		Expertise:   c.Query("expertise"),
		CompareMode: compare,
		Selected:    services.ParseCompareIDs(c.Query("selected")),
	}
	if sort := c.Query("sort"); sort != "" {
		q.Order = catalog.ParsePriceOrder(sort)
	}

	view, err := h.Directory.Catalog(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CompareDentists serves /dentists/compare?ids=a,b
func (h *Handler) CompareDentists(c *gin.Context) {
	view := h.Comparison.Compare(c.Request.Context(), services.ParseCompareIDs(c.Query("ids")))
	status := http.StatusOK
	if view.State == services.CompareError {
		status = http.StatusBadGateway
	}
	c.JSON(status, view)
}

func (h *Handler) GetDentist(c *gin.Context) {
	detail, err := h.Directory.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) DentistUnavailable(c *gin.Context) {
	slots, err := h.Directory.Unavailable(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// BlockSchedule marks a slot in a dentist's calendar as unavailable.
func (h *Handler) BlockSchedule(c *gin.Context) {
	var req struct {
		Date time.Time `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := h.Appointments.Block(c.Request.Context(), middleware.SessionToken(c), c.Param("id"), req.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
