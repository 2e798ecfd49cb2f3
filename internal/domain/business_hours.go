package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// Break is a recurring unavailable window inside a working day
type Break struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// BusinessHours is the weekly schedule entry for one weekday (0 = Sunday).
// Start, End and Breaks are wall-clock times in Timezone.
type BusinessHours struct {
	Weekday      time.Weekday
	IsWorkingDay bool
	StartTime    types.TimeString
	EndTime      types.TimeString
	Breaks       []Break
	Timezone     string
	UpdatedAt    time.Time
}

// Validate checks the schedule invariants: start < end on working days,
// every break inside [start, end) and breaks not overlapping each other.
func (h *BusinessHours) Validate() error {
	if h.Weekday < time.Sunday || h.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d out of range 0-6", ErrInvalidBusinessHours, h.Weekday)
	}

	if h.Timezone != "" {
		if _, err := time.LoadLocation(h.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidBusinessHours, h.Timezone)
		}
	}

	if !h.IsWorkingDay {
		return nil
	}

	if err := h.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidBusinessHours, err)
	}
	if err := h.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidBusinessHours, err)
	}
	if !h.StartTime.IsBefore(h.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidBusinessHours, h.StartTime, h.EndTime)
	}

	breaks := make([]Break, len(h.Breaks))
	copy(breaks, h.Breaks)
	sort.Slice(breaks, func(i, j int) bool { return breaks[i].Start.IsBefore(breaks[j].Start) })

	for i, b := range breaks {
		if err := b.Start.Validate(); err != nil {
			return fmt.Errorf("%w: break start: %v", ErrInvalidBusinessHours, err)
		}
		if err := b.End.Validate(); err != nil {
			return fmt.Errorf("%w: break end: %v", ErrInvalidBusinessHours, err)
		}
		if !b.Start.IsBefore(b.End) {
			return fmt.Errorf("%w: break %s-%s is empty", ErrInvalidBusinessHours, b.Start, b.End)
		}
		if b.Start.IsBefore(h.StartTime) || b.End.IsAfter(h.EndTime) {
			return fmt.Errorf("%w: break %s-%s outside working hours", ErrInvalidBusinessHours, b.Start, b.End)
		}
		if i > 0 && b.Start.IsBefore(breaks[i-1].End) {
			return fmt.Errorf("%w: breaks %s-%s and %s-%s overlap", ErrInvalidBusinessHours,
				breaks[i-1].Start, breaks[i-1].End, b.Start, b.End)
		}
	}

	return nil
}

// BreakIntervals returns the breaks as occupied intervals
func (h *BusinessHours) BreakIntervals() []OccupiedInterval {
	intervals := make([]OccupiedInterval, 0, len(h.Breaks))
	for _, b := range h.Breaks {
		intervals = append(intervals, OccupiedInterval{
			StartMinute:     b.Start.Minutes(),
			DurationMinutes: b.End.Minutes() - b.Start.Minutes(),
			Source:          SourceBreak,
		})
	}
	return intervals
}

// FallbackBusinessHours is the schedule assumed when the business-hours store cannot answer:
// Monday to Friday 09:00-17:00 without breaks, weekends closed.
func FallbackBusinessHours(weekday time.Weekday, timezone string) *BusinessHours {
	hours := &BusinessHours{
		Weekday:  weekday,
		Timezone: timezone,
		Breaks:   []Break{},
	}
	if weekday == time.Saturday || weekday == time.Sunday {
		return hours
	}
	hours.IsWorkingDay = true
	hours.StartTime = FallbackOpenTime
	hours.EndTime = FallbackCloseTime
	return hours
}
