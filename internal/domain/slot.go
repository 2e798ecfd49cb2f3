package domain

import "github.com/yaduk2001/selling-sub001/pkg/types"

// AvailableSlot represents a start time free for a session of DurationMinutes
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// EndTime returns the exclusive end of the slot
func (s *AvailableSlot) EndTime() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMinutes)
}
