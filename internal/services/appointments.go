package services

import (
	"context"
	"strings"
	"time"

	"github.com/harentsoaR/dentist-booking-web/internal/catalog"
	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

type AppointmentAPI interface {
	ListBookings(ctx context.Context, token string) ([]models.Booking, error)
	PatientHistory(ctx context.Context, token, patientID string) ([]models.Booking, error)
	GetBooking(ctx context.Context, token, id string) (*models.Booking, error)
	BlockSchedule(ctx context.Context, token, dentistID string, at time.Time) (*models.Booking, error)
	CancelBooking(ctx context.Context, token, id string) (*models.Booking, error)
	CompleteAppointment(ctx context.Context, token, id, treatmentDetail string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, token, id string) error
}

// HistoryQuery is the table state a history request asks for.
type HistoryQuery struct {
	Search      string
	Status      models.BookingStatus
	From        time.Time
	To          time.Time
	Sort        catalog.SortOrder
	PageSize    int
	Page        int
	HideBlocked bool
}

// AppointmentService covers booking lists and the dentist-side actions on a booking.
type AppointmentService struct {
	api      AppointmentAPI
	pageSize int
	logger   *logging.Logger
}

func NewAppointmentService(api AppointmentAPI, pageSize int, logger *logging.Logger) *AppointmentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentService{api: api, pageSize: pageSize, logger: logger}
}

// History lists the session user's bookings through the history pipeline.
func (s *AppointmentService) History(ctx context.Context, token string, q HistoryQuery) (*catalog.HistoryPage, error) {
	if err := requireSession(token, "You must be logged in to see your booking History."); err != nil {
		return nil, err
	}
	bookings, err := s.api.ListBookings(ctx, token)
	if err != nil {
		return nil, failed("Failed to load booking history.", err)
	}
	return s.page(bookings, q), nil
}

// PatientHistory lists one patient's bookings for their dentist.
func (s *AppointmentService) PatientHistory(ctx context.Context, token, patientID string, q HistoryQuery) (*catalog.HistoryPage, error) {
	if err := requireSession(token, "You must be logged in to see patient history."); err != nil {
		return nil, err
	}
	bookings, err := s.api.PatientHistory(ctx, token, patientID)
	if err != nil {
		return nil, failed("Failed to load patient history.", err)
	}
	return s.page(bookings, q), nil
}

func (s *AppointmentService) page(bookings []models.Booking, q HistoryQuery) *catalog.HistoryPage {
	size := q.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	h := catalog.NewHistory(bookings, size)
	h.HideBlocked(q.HideBlocked)
	h.SetStatus(q.Status)
	h.SetDateRange(q.From, q.To)
	h.SetSearch(q.Search)
	if q.Sort != "" {
		h.SetSort(q.Sort)
	}
	h.SetPage(q.Page)
	p := h.Page()
	return &p
}

// Booking fetches one booking for the detail modal.
func (s *AppointmentService) Booking(ctx context.Context, token, id string) (*models.Booking, error) {
	if err := requireSession(token, "You must be logged in to view a booking."); err != nil {
		return nil, err
	}
	b, err := s.api.GetBooking(ctx, token, id)
	if err != nil {
		return nil, failed("Failed to load booking data", err)
	}
	return b, nil
}

// Block reserves a slot in the dentist's own schedule.
func (s *AppointmentService) Block(ctx context.Context, token, dentistID string, at time.Time) (*BookingResult, error) {
	if at.IsZero() {
		return nil, flowErr(KindInvalid, "Please select a date to block.", nil)
	}
	if err := requireSession(token, "You must be logged in to block a schedule."); err != nil {
		return nil, err
	}
	b, err := s.api.BlockSchedule(ctx, token, dentistID, at)
	if err != nil {
		return nil, failed("Cannot block schedule.", err)
	}
	return &BookingResult{Booking: b, Notice: notice("Schedule blocked.")}, nil
}

func (s *AppointmentService) Cancel(ctx context.Context, token, id string) (*BookingResult, error) {
	if err := requireSession(token, "You must be logged in to cancel a booking."); err != nil {
		return nil, err
	}
	b, err := s.api.CancelBooking(ctx, token, id)
	if err != nil {
		return nil, failed("Failed to cancel booking.", err)
	}
	return &BookingResult{Booking: b, Notice: notice("Booking cancelled.")}, nil
}

// Complete closes an appointment with the treatment that was given.
func (s *AppointmentService) Complete(ctx context.Context, token, id, treatmentDetail string) (*BookingResult, error) {
	detail := strings.TrimSpace(treatmentDetail)
	if detail == "" {
		return nil, flowErr(KindInvalid, "Please describe the treatment given.", nil)
	}
	if err := requireSession(token, "You must be logged in to complete an appointment."); err != nil {
		return nil, err
	}
	b, err := s.api.CompleteAppointment(ctx, token, id, detail)
	if err != nil {
		return nil, failed("Failed to mark appointment as completed.", err)
	}
	return &BookingResult{Booking: b, Notice: notice("Appointment completed.")}, nil
}

func (s *AppointmentService) Delete(ctx context.Context, token, id string) (*Notice, error) {
	if err := requireSession(token, "You must be logged in to delete a booking."); err != nil {
		return nil, err
	}
	if err := s.api.DeleteBooking(ctx, token, id); err != nil {
		return nil, failed("Cannot delete booking.", err)
	}
	return notice("Booking deleted."), nil
}
