package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dentist-booking-web/internal/backend"
	"github.com/harentsoaR/dentist-booking-web/internal/config"
	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/services"
)

// Handler holds the flows every route delegates to.
type Handler struct {
	Directory     *services.DirectoryService
	Comparison    *services.ComparisonService
	Reservations  *services.ReservationService
	Appointments  *services.AppointmentService
	Reviews       *services.ReviewService
	Confirmations *services.ConfirmationService
	Profiles      *services.ProfileService
	Users         *services.UserService

	location *time.Location
	logger   *logging.Logger
}

// NewHandler builds every flow on top of one backend client.
func NewHandler(api *backend.Client, notifier services.LinkNotifier, cfg *config.Config, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		Directory:     services.NewDirectoryService(api),
		Comparison:    services.NewComparisonService(api, logger),
		Reservations:  services.NewReservationService(api, notifier, logger),
		Appointments:  services.NewAppointmentService(api, cfg.HistoryPageSize, logger),
		Reviews:       services.NewReviewService(api, cfg.ReviewNoticeDelay, logger),
		Confirmations: services.NewConfirmationService(api, logger),
		Profiles:      services.NewProfileService(api, cfg.RedirectDelay, logger),
		Users:         services.NewUserService(api, logger),
		location:      cfg.Location(),
		logger:        logger,
	}
}

func statusForKind(kind services.Kind) int {
	switch kind {
	case services.KindInvalid:
		return http.StatusBadRequest
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// respondError writes err in the {"error": message} shape.
func (h *Handler) respondError(c *gin.Context, err error) {
	var fe *services.FlowError
	if errors.As(err, &fe) {
		if fe.Err != nil {
			h.logger.Warn("request failed", "path", c.FullPath(), "message", fe.Message, "error", fe.Err)
		}
		c.JSON(statusForKind(fe.Kind), gin.H{"error": fe.Message})
		return
	}
	h.logger.Error("unexpected handler error", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
