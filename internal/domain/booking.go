package domain

import (
	"time"

	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking is a committed, paid session. Created only by promoting a reservation.
type Booking struct {
	ID              int64
	ProductID       string
	ReservationID   string
	TransactionRef  string
	UserID          *string
	CustomerEmail   *string
	BusinessDate    time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking still occupies its time range
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanTransitionTo reports whether an admin may move the booking to next.
// Only confirmed bookings change state; cancelled, completed and no_show are terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status != StatusConfirmed {
		return false
	}
	switch next {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// Interval returns the occupied range of the booking on its business date
func (b *Booking) Interval() OccupiedInterval {
	return OccupiedInterval{
		StartMinute:     b.StartTime.Minutes(),
		DurationMinutes: b.DurationMinutes,
		Source:          SourceBooking,
	}
}

// IsValidBookingStatus checks that s is a known status
func IsValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// BookingsFilter represents filter criteria for admin booking listings
type BookingsFilter struct {
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *BookingStatus
	CustomerEmail    *string
	IncludeCancelled bool
}
