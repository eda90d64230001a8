package services

import (
	"context"

	"github.com/harentsoaR/dentist-booking-web/internal/backend"
	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

// ConfirmState is where a confirmation page is in its lifecycle.
type ConfirmState string

const (
	ConfirmIdle    ConfirmState = "idle"
	ConfirmLoading ConfirmState = "loading"
	ConfirmSuccess ConfirmState = "success"
	ConfirmError   ConfirmState = "error"
)

const (
	confirmPrompt    = "Please confirm your appointment by clicking the button below."
	confirmedMessage = "Your appointment has been confirmed. Thank you!"
)

// ConfirmationAPI needs no session: the booking id in the link is the credential.
type ConfirmationAPI interface {
	GetBooking(ctx context.Context, token, id string) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, id string) error
}

// Confirmation is the view a confirmation link renders.
type Confirmation struct {
	Booking    *models.Booking `json:"booking"`
	State      ConfirmState    `json:"state"`
	Message    string          `json:"message"`
	Error      string          `json:"error,omitempty"`
	CanConfirm bool            `json:"canConfirm"`
}

func (c *Confirmation) canConfirm() bool {
	return c.Booking != nil &&
		c.Booking.Status != models.StatusConfirmed &&
		c.State != ConfirmLoading &&
		c.State != ConfirmSuccess
}

func (c *Confirmation) set(state ConfirmState, message, errMsg string) {
	c.State = state
	c.Message = message
	c.Error = errMsg
	c.CanConfirm = c.canConfirm()
}

type ConfirmationService struct {
	api    ConfirmationAPI
	logger *logging.Logger
}

func NewConfirmationService(api ConfirmationAPI, logger *logging.Logger) *ConfirmationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ConfirmationService{api: api, logger: logger}
}

// Load fetches the booking behind a link. An already confirmed booking
// starts in the success state.
func (s *ConfirmationService) Load(ctx context.Context, bookingID string) (*Confirmation, error) {
	booking, err := s.api.GetBooking(ctx, "", bookingID)
	if err != nil {
		return nil, failed("Could not load booking details. The link may be invalid or expired.", err)
	}
	c := &Confirmation{Booking: booking}
	if booking.Status == models.StatusConfirmed {
		c.set(ConfirmSuccess, confirmedMessage, "")
	} else {
		c.set(ConfirmIdle, confirmPrompt, "")
	}
	return c, nil
}

// Confirm runs the confirm action. It is a no-op unless the view allows it,
// so an already confirmed booking never reaches the network.
// On success the local status mirrors the server without a re-fetch.
func (s *ConfirmationService) Confirm(ctx context.Context, c *Confirmation) {
	if !c.canConfirm() {
		return
	}
	c.set(ConfirmLoading, c.Message, "")

	if err := s.api.ConfirmBooking(ctx, c.Booking.ID.Hex()); err != nil {
		msg := backend.MessageOf(err)
		if msg == "" {
			msg = "An error occurred while confirming your appointment."
		}
		s.logger.Warn("booking confirmation failed", "booking_id", c.Booking.ID.Hex(), "error", err)
		c.set(ConfirmError, confirmPrompt, msg)
		return
	}

	c.Booking.Status = models.StatusConfirmed
	c.set(ConfirmSuccess, confirmedMessage, "")
}
