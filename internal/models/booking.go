package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus is the backend's booking lifecycle label. The backend does not
// publish the vocabulary; these are the values the application acts on.
type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusBlocked   BookingStatus = "blocked"
)

// BookingStatuses lists the known statuses in display order.
var BookingStatuses = []BookingStatus{
	StatusUpcoming, StatusConfirmed, StatusCompleted, StatusCancelled, StatusBlocked,
}

// Known reports whether s is one of BookingStatuses.
func (s BookingStatus) Known() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Booking struct {
	ID              primitive.ObjectID `json:"_id"`
	BookingDate     time.Time          `json:"bookingDate"`
	User            Ref                `json:"user"`
	Dentist         Ref                `json:"dentist"`
	Status          BookingStatus      `json:"status"`
	TreatmentDetail string             `json:"treatmentDetail,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// Slot is a time the backend reports as unavailable for a dentist.
type Slot struct {
	BookingDate time.Time     `json:"bookingDate"`
	Status      BookingStatus `json:"status,omitempty"`
}

// ISOTime formats t the way the backend stores booking dates:
// UTC with millisecond precision, e.g. 2025-06-01T10:00:00.000Z.
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
