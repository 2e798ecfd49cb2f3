package slots

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

// Etc/GMT+5 это UTC-5 без перехода на летнее время
const utcMinus5 = "Etc/GMT+5"

func TestLocalCalendarDateOf(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		tz   string
		want string
	}{
		{"evening block stays on the same local day", time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC), utcMinus5, "2024-06-01"},
		{"local midnight starts the day", time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC), utcMinus5, "2024-06-01"},
		{"local 23:59 still the same day", time.Date(2024, 6, 2, 4, 59, 0, 0, time.UTC), utcMinus5, "2024-06-01"},
		{"next local midnight is the next day", time.Date(2024, 6, 2, 5, 0, 0, 0, time.UTC), utcMinus5, "2024-06-02"},
		{"UTC identity", time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC), "UTC", "2024-06-01"},
		{"east of UTC rolls forward", time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC), "Asia/Tokyo", "2024-06-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.tz)
			require.NoError(t, err)
			assert.Equal(t, tt.want, LocalCalendarDateOf(tt.ts, loc))
		})
	}
}

func TestLoadLocation_UnknownTimezone(t *testing.T) {
	_, err := LoadLocation("Nowhere/Land")
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = LoadLocation("")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestSearchWindow(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	from, to := SearchWindow(date)

	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), to)
}

func TestBlockIntervalOnDate_CrossMidnightUTC(t *testing.T) {
	loc, err := LoadLocation(utcMinus5)
	require.NoError(t, err)

	// 23:30Z-00:30Z следующих суток UTC это 18:30-19:30 местного времени 1 июня
	block := &domain.AdminBlock{
		StartAt: time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 2, 0, 30, 0, 0, time.UTC),
	}

	interval, ok := BlockIntervalOnDate(block, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), loc)
	require.True(t, ok)
	assert.Equal(t, 18*60+30, interval.StartMinute)
	assert.Equal(t, 60, interval.DurationMinutes)
	assert.Equal(t, domain.SourceAdminBlock, interval.Source)

	_, ok = BlockIntervalOnDate(block, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), loc)
	assert.False(t, ok, "block must not leak into the next UTC date")
}

func TestBlockIntervalOnDate_DayBoundaries(t *testing.T) {
	loc, err := LoadLocation(utcMinus5)
	require.NoError(t, err)
	june1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// 00:00-01:00 местного времени
	atMidnight := &domain.AdminBlock{
		StartAt: time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
	}
	interval, ok := BlockIntervalOnDate(atMidnight, june1, loc)
	require.True(t, ok)
	assert.Equal(t, 0, interval.StartMinute)
	assert.Equal(t, 60, interval.DurationMinutes)

	// 23:59 местного времени до следующего дня обрезается концом суток
	lastMinute := &domain.AdminBlock{
		StartAt: time.Date(2024, 6, 2, 4, 59, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 2, 6, 0, 0, 0, time.UTC),
	}
	interval, ok = BlockIntervalOnDate(lastMinute, june1, loc)
	require.True(t, ok)
	assert.Equal(t, 23*60+59, interval.StartMinute)
	assert.Equal(t, 1, interval.DurationMinutes)

	// Блок, заканчивающийся ровно в локальную полночь, не задевает следующий день
	endsAtMidnight := &domain.AdminBlock{
		StartAt: time.Date(2024, 6, 2, 3, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 2, 5, 0, 0, 0, time.UTC),
	}
	_, ok = BlockIntervalOnDate(endsAtMidnight, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), loc)
	assert.False(t, ok)
}

func TestBlockIntervalOnDate_AwayCoversWholeDay(t *testing.T) {
	block := &domain.AdminBlock{
		StartAt: time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC),
		Away:    true,
	}

	interval, ok := BlockIntervalOnDate(block, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	require.True(t, ok)
	assert.Equal(t, 0, interval.StartMinute)
	assert.Equal(t, 24*60, interval.DurationMinutes)
}

func TestBlockIntervalOnDate_MultiDaySpan(t *testing.T) {
	block := &domain.AdminBlock{
		StartAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC),
	}

	interval, ok := BlockIntervalOnDate(block, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), time.UTC)
	require.True(t, ok)
	assert.Equal(t, 0, interval.StartMinute)
	assert.Equal(t, 24*60, interval.DurationMinutes)
}
