package domain

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackBusinessHours(t *testing.T) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		h := FallbackBusinessHours(wd, "America/New_York")
		require.NoError(t, h.Validate())
		assert.Equal(t, wd, h.Weekday)
		assert.Equal(t, "America/New_York", h.Timezone)
		assert.Empty(t, h.Breaks)

		if wd == time.Saturday || wd == time.Sunday {
			assert.False(t, h.IsWorkingDay, "weekday %s", wd)
			continue
		}
		assert.True(t, h.IsWorkingDay, "weekday %s", wd)
		assert.EqualValues(t, "09:00", h.StartTime)
		assert.EqualValues(t, "17:00", h.EndTime)
	}
}

func TestBusinessHours_Validate(t *testing.T) {
	valid := func() *BusinessHours {
		return &BusinessHours{
			Weekday:      time.Monday,
			IsWorkingDay: true,
			StartTime:    "09:00",
			EndTime:      "17:00",
			Breaks:       []Break{{Start: "12:00", End: "13:00"}},
			Timezone:     "Europe/Berlin",
		}
	}

	tests := []struct {
		name   string
		mutate func(h *BusinessHours)
		ok     bool
	}{
		{"valid", func(h *BusinessHours) {}, true},
		{"closed day ignores times", func(h *BusinessHours) { h.IsWorkingDay = false; h.StartTime = "" }, true},
		{"start after end", func(h *BusinessHours) { h.StartTime = "18:00" }, false},
		{"start equals end", func(h *BusinessHours) { h.EndTime = "09:00" }, false},
		{"bad time", func(h *BusinessHours) { h.EndTime = "25:00" }, false},
		{"break outside", func(h *BusinessHours) { h.Breaks = []Break{{Start: "16:30", End: "17:30"}} }, false},
		{"empty break", func(h *BusinessHours) { h.Breaks = []Break{{Start: "12:00", End: "12:00"}} }, false},
		{"overlapping breaks", func(h *BusinessHours) {
			h.Breaks = []Break{{Start: "12:00", End: "13:00"}, {Start: "12:30", End: "14:00"}}
		}, false},
		{"adjacent breaks", func(h *BusinessHours) {
			h.Breaks = []Break{{Start: "13:00", End: "14:00"}, {Start: "12:00", End: "13:00"}}
		}, true},
		{"unknown timezone", func(h *BusinessHours) { h.Timezone = "Mars/Olympus" }, false},
		{"weekday out of range", func(h *BusinessHours) { h.Weekday = 7 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid()
			tt.mutate(h)
			err := h.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidBusinessHours))
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestBusinessHours_BreakIntervals(t *testing.T) {
	h := &BusinessHours{Breaks: []Break{{Start: "12:00", End: "12:45"}}}

	intervals := h.BreakIntervals()
	require.Len(t, intervals, 1)
	assert.Equal(t, 720, intervals[0].StartMinute)
	assert.Equal(t, 45, intervals[0].DurationMinutes)
	assert.Equal(t, SourceBreak, intervals[0].Source)
}

func TestAdminBlock_Validate(t *testing.T) {
	start := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)

	assert.NoError(t, (&AdminBlock{StartAt: start, EndAt: start.Add(time.Hour)}).Validate())
	assert.ErrorIs(t, (&AdminBlock{StartAt: start, EndAt: start}).Validate(), ErrInvalidAdminBlock)
	assert.ErrorIs(t, (&AdminBlock{StartAt: start}).Validate(), ErrInvalidAdminBlock)
}
