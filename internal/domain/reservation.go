package domain

import (
	"time"

	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// ReservationStatus represents the lifecycle state of a hold
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationExpired   ReservationStatus = "expired"
)

// Reservation is a short-lived hold on a slot while the buyer pays.
// A pending reservation whose ExpiresAt has passed is treated as absent by every reader,
// whether or not a sweep has already rewritten its status.
type Reservation struct {
	ID              string
	ProductID       string
	BusinessDate    time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus
	ExpiresAt       time.Time
	SecurityToken   string
	TransactionRef  *string
	CustomerEmail   *string

	ConfirmedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLive reports whether the hold still blocks its slot at now
func (r *Reservation) IsLive(now time.Time) bool {
	return r.Status == ReservationPending && now.Before(r.ExpiresAt)
}

// IsLapsed reports whether the hold is pending in storage but past its expiry, or already swept
func (r *Reservation) IsLapsed(now time.Time) bool {
	return r.Status == ReservationExpired || (r.Status == ReservationPending && !now.Before(r.ExpiresAt))
}

// EffectiveStatus is the status a reader should observe at now
func (r *Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.IsLapsed(now) {
		return ReservationExpired
	}
	return r.Status
}

// Interval returns the occupied range of the hold on its business date
func (r *Reservation) Interval() OccupiedInterval {
	return OccupiedInterval{
		StartMinute:     r.StartTime.Minutes(),
		DurationMinutes: r.DurationMinutes,
		Source:          SourceReservation,
	}
}
