package services

import (
	"context"
	"strings"
	"time"

	"github.com/harentsoaR/dentist-booking-web/internal/backend"
	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

// ReservationAPI is the slice of the backend the reservation form uses.
type ReservationAPI interface {
	CreateBooking(ctx context.Context, token, dentistID string, at time.Time) (*models.Booking, error)
	GetBooking(ctx context.Context, token, id string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, token, id string, update backend.BookingUpdate) (*models.Booking, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

// ReservationForm is the two-field form shared by booking create and edit.
type ReservationForm struct {
	DentistID string    `json:"dentist"`
	Date      time.Time `json:"date"`
}

// Validate requires both a dentist and a date.
func (f ReservationForm) Validate() error {
	if strings.TrimSpace(f.DentistID) == "" || f.Date.IsZero() {
		return flowErr(KindInvalid, "Please select a dentist and appointment date.", nil)
	}
	return nil
}

// BookingResult is a booking together with the notice to show for it.
type BookingResult struct {
	Booking *models.Booking `json:"booking,omitempty"`
	Notice  *Notice         `json:"notice"`
}

type ReservationService struct {
	api      ReservationAPI
	notifier LinkNotifier
	logger   *logging.Logger
}

func NewReservationService(api ReservationAPI, notifier LinkNotifier, logger *logging.Logger) *ReservationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReservationService{api: api, notifier: notifier, logger: logger}
}

// Create books the selected dentist. A failed create is explained by
// looking the user up again: banned users get a distinct message.
func (s *ReservationService) Create(ctx context.Context, token string, form ReservationForm) (*BookingResult, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := requireSession(token, "You must be logged in to make a booking."); err != nil {
		return nil, err
	}

	booking, err := s.api.CreateBooking(ctx, token, form.DentistID, form.Date)
	if err != nil {
		if user, meErr := s.api.Me(ctx, token); meErr == nil && user.Role == models.RoleBanned {
			return nil, flowErr(KindForbidden, "Failed to create booking. You got banned", err)
		}
		return nil, flowErr(KindConflict, "Failed to create booking. You already have a booking!", err)
	}

	s.notify(ctx, token, booking)
	return &BookingResult{Booking: booking, Notice: notice("Booking successful!")}, nil
}

func (s *ReservationService) notify(ctx context.Context, token string, booking *models.Booking) {
	if s.notifier == nil {
		return
	}
	user, err := s.api.Me(ctx, token)
	if err != nil {
		s.logger.Warn("confirmation link not sent: user lookup failed", "booking_id", booking.ID.Hex(), "error", err)
		return
	}
	s.notifier.SendConfirmationLink(user, booking)
}

// LoadForEdit prefills the form from an existing booking.
func (s *ReservationService) LoadForEdit(ctx context.Context, token, bookingID string) (*ReservationForm, error) {
	if err := requireSession(token, "You must be logged in to edit a booking."); err != nil {
		return nil, err
	}
	booking, err := s.api.GetBooking(ctx, token, bookingID)
	if err != nil {
		return nil, failed("Failed to load booking data", err)
	}
	return &ReservationForm{DentistID: booking.Dentist.ID.Hex(), Date: booking.BookingDate}, nil
}

// Edit moves a booking to the form's dentist and date.
func (s *ReservationService) Edit(ctx context.Context, token, bookingID string, form ReservationForm) (*BookingResult, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := requireSession(token, "You must be logged in to edit a booking."); err != nil {
		return nil, err
	}

	date := models.ISOTime(form.Date)
	dentist := form.DentistID
	booking, err := s.api.UpdateBooking(ctx, token, bookingID, backend.BookingUpdate{
		BookingDate: &date,
		Dentist:     &dentist,
	})
	if err != nil {
		return nil, failed("Failed to edit booking.", err)
	}
	return &BookingResult{Booking: booking, Notice: notice("Booking Edited!")}, nil
}
