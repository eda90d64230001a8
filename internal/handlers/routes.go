package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dentist-booking-web/internal/middleware"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

// RegisterRoutes mounts the public pages and, behind auth, the session pages.
func RegisterRoutes(r *gin.Engine, h *Handler, auth gin.HandlerFunc, metricsHandler http.Handler) {
	r.GET("/healthz", h.Health)
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	r.GET("/dentists", h.ListDentists)
	r.GET("/dentists/compare", h.CompareDentists)
	r.GET("/dentists/:id", h.GetDentist)
	r.GET("/dentists/:id/unavailable", h.DentistUnavailable)

	r.GET("/confirm/:bid", h.GetConfirmation)
	r.POST("/confirm/:bid", h.ConfirmBooking)

	apiRoutes := r.Group("/")
	apiRoutes.Use(auth)
	{
		apiRoutes.GET("/bookings/history", h.BookingHistory)
		apiRoutes.POST("/bookings", h.CreateBooking)
		apiRoutes.GET("/bookings/:id", h.GetBooking)
		apiRoutes.GET("/bookings/:id/edit", h.EditBookingForm)
		apiRoutes.PUT("/bookings/:id", h.UpdateBooking)
		apiRoutes.DELETE("/bookings/:id", h.DeleteBooking)
		apiRoutes.POST("/bookings/:id/review", h.ReviewBooking)

		apiRoutes.GET("/profile", h.GetProfile)
		apiRoutes.GET("/profile/edit", h.GetProfileEdit)
		apiRoutes.PUT("/profile/edit", h.UpdateProfile)
	}

	dentistRoutes := apiRoutes.Group("/")
	dentistRoutes.Use(middleware.RequireRole(models.RoleDentist, models.RoleAdmin))
	{
		dentistRoutes.GET("/patients/:pid/history", h.PatientHistory)
		dentistRoutes.PATCH("/bookings/:id/cancel", h.CancelBooking)
		dentistRoutes.PATCH("/bookings/:id/complete", h.CompleteAppointment)
		dentistRoutes.POST("/dentists/:id/blocks", h.BlockSchedule)
	}

	adminRoutes := apiRoutes.Group("/manage")
	adminRoutes.Use(middleware.RequireRole(models.RoleAdmin))
	{
		adminRoutes.GET("/users", h.ListUsers)
		adminRoutes.GET("/users/:uid", h.GetUser)
		adminRoutes.PUT("/users/:uid", h.UpdateUser)
	}
}
