package domain

// OccupiedSource tells where an occupied interval came from
type OccupiedSource string

const (
	SourceBooking     OccupiedSource = "booking"
	SourceReservation OccupiedSource = "reservation"
	SourceAdminBlock  OccupiedSource = "admin_block"
	SourceBreak       OccupiedSource = "break"
)

// OccupiedInterval is a half-open range [StartMinute, StartMinute+DurationMinutes)
// in minutes from local midnight of one business date.
type OccupiedInterval struct {
	StartMinute     int
	DurationMinutes int
	Source          OccupiedSource
}

// EndMinute returns the exclusive end of the interval
func (i OccupiedInterval) EndMinute() int {
	return i.StartMinute + i.DurationMinutes
}

// Overlaps reports half-open overlap: touching ranges do not overlap
func (i OccupiedInterval) Overlaps(other OccupiedInterval) bool {
	return i.StartMinute < other.EndMinute() && i.EndMinute() > other.StartMinute
}
