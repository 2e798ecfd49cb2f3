package slots

import (
	"errors"
	"fmt"

	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// ErrInvalidDuration возвращается при неположительной длительности сессии
var ErrInvalidDuration = errors.New("slots: duration must be positive")

// Generate разбивает рабочий день [start, end) на старты сессий длиной durationMinutes.
// Старты идут с шагом durationMinutes от start; слот включается, только если start+d <= end,
// поэтому хвост короче длительности отбрасывается.
func Generate(durationMinutes int, start, end types.TimeString) ([]types.TimeString, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if err := end.Validate(); err != nil {
		return nil, err
	}

	open := start.Minutes()
	closing := end.Minutes()

	result := make([]types.TimeString, 0)
	for m := open; m+durationMinutes <= closing; m += durationMinutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, err
		}
		result = append(result, slot)
	}

	return result, nil
}

// IsOnGrid проверяет, что startTime совпадает с одним из слотов Generate
func IsOnGrid(durationMinutes int, start, end, startTime types.TimeString) bool {
	candidates, err := Generate(durationMinutes, start, end)
	if err != nil {
		return false
	}
	for _, c := range candidates {
		if c.Equal(startTime) {
			return true
		}
	}
	return false
}
