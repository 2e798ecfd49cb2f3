package domain

import "time"

// Default configuration values
const (
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
	DefaultTimezone                = "UTC"
	ReservationHoldDuration        = 15 * time.Minute
)

// FallbackOpenTime and FallbackCloseTime bound a working day under FallbackBusinessHours
const (
	FallbackOpenTime  = "09:00"
	FallbackCloseTime = "17:00"
)

// Business validation constants
const (
	MinSessionDurationMinutes = 5
	MaxSessionDurationMinutes = 480 // 8 hours
	MaxAdvanceBookingDays     = 365
	MaxBookingNoticeMinutes   = 10080 // 1 week
	MaxBlockLabelLength       = 200
	MaxTransactionRefLength   = 255
	MaxProductIDLength        = 100

	// ClaimBucketMinutes is the granularity of storage-level slot claims.
	// One minute keeps adjacent slots of any duration from sharing a bucket.
	ClaimBucketMinutes = 1

	// SecurityTokenBytes of randomness behind a reservation security token (256 bits)
	SecurityTokenBytes = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
