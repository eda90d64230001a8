package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

// BookingUpdate is the body of PUT /bookings/:id. Nil fields are omitted.
type BookingUpdate struct {
	BookingDate     *string               `json:"bookingDate,omitempty"`
	Dentist         *string               `json:"dentist,omitempty"`
	Status          *models.BookingStatus `json:"status,omitempty"`
	TreatmentDetail *string               `json:"treatmentDetail,omitempty"`
}

type createBookingBody struct {
	BookingDate string               `json:"bookingDate"`
	Status      models.BookingStatus `json:"status,omitempty"`
}

// ListBookings returns the bookings visible to the session's user.
func (c *Client) ListBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.do(ctx, "list_bookings", http.MethodGet, "/bookings", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBooking fetches a booking. token may be empty for the confirmation link.
func (c *Client) GetBooking(ctx context.Context, token, id string) (*models.Booking, error) {
	const op = "get_booking"
	if err := checkID(op, id); err != nil {
		return nil, err
	}
	var out models.Booking
	if err := c.do(ctx, op, http.MethodGet, "/bookings/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	if out.ID.IsZero() {
		return nil, &Error{Op: op, Code: CodeNotFound, Message: "booking not found"}
	}
	return &out, nil
}

// CreateBooking books the session's user with a dentist at the given time.
func (c *Client) CreateBooking(ctx context.Context, token, dentistID string, at time.Time) (*models.Booking, error) {
	return c.createBooking(ctx, "create_booking", token, dentistID, createBookingBody{BookingDate: models.ISOTime(at)})
}

// BlockSchedule marks a dentist's slot as unavailable.
func (c *Client) BlockSchedule(ctx context.Context, token, dentistID string, at time.Time) (*models.Booking, error) {
	return c.createBooking(ctx, "block_schedule", token, dentistID, createBookingBody{
		BookingDate: models.ISOTime(at),
		Status:      models.StatusBlocked,
	})
}

func (c *Client) createBooking(ctx context.Context, op, token, dentistID string, body createBookingBody) (*models.Booking, error) {
	if err := checkID(op, dentistID); err != nil {
		return nil, err
	}
	var out models.Booking
	if err := c.do(ctx, op, http.MethodPost, "/dentists/"+url.PathEscape(dentistID)+"/bookings", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBooking changes the date, dentist or status of a booking.
func (c *Client) UpdateBooking(ctx context.Context, token, id string, update BookingUpdate) (*models.Booking, error) {
	const op = "update_booking"
	if err := checkID(op, id); err != nil {
		return nil, err
	}
	var out models.Booking
	if err := c.do(ctx, op, http.MethodPut, "/bookings/"+url.PathEscape(id), token, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelBooking sets a booking's status to cancelled.
func (c *Client) CancelBooking(ctx context.Context, token, id string) (*models.Booking, error) {
	status := models.StatusCancelled
	return c.UpdateBooking(ctx, token, id, BookingUpdate{Status: &status})
}

// CompleteAppointment marks a booking completed with the treatment given.
func (c *Client) CompleteAppointment(ctx context.Context, token, id, treatmentDetail string) (*models.Booking, error) {
	status := models.StatusCompleted
	return c.UpdateBooking(ctx, token, id, BookingUpdate{Status: &status, TreatmentDetail: &treatmentDetail})
}

// DeleteBooking removes a booking.
func (c *Client) DeleteBooking(ctx context.Context, token, id string) error {
	const op = "delete_booking"
	if err := checkID(op, id); err != nil {
		return err
	}
	return c.do(ctx, op, http.MethodDelete, "/bookings/"+url.PathEscape(id), token, nil, nil)
}

// ConfirmBooking confirms a booking from its shareable link. No session is sent.
func (c *Client) ConfirmBooking(ctx context.Context, id string) error {
	const op = "confirm_booking"
	if err := checkID(op, id); err != nil {
		return err
	}
	return c.do(ctx, op, http.MethodPut, "/bookings/"+url.PathEscape(id)+"/confirm", "", nil, nil)
}

// PatientHistory returns every booking a patient has made.
func (c *Client) PatientHistory(ctx context.Context, token, patientID string) ([]models.Booking, error) {
	const op = "patient_history"
	if err := checkID(op, patientID); err != nil {
		return nil, err
	}
	var out []models.Booking
	if err := c.do(ctx, op, http.MethodGet, "/bookings/patientHistory/"+url.PathEscape(patientID), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
