package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/pkg/types"
)

func TestOverlaps_HalfOpen(t *testing.T) {
	// 10:00+60 и 11:00+60 соприкасаются, но не пересекаются
	assert.False(t, Overlaps(600, 60, 660, 60))
	assert.False(t, Overlaps(660, 60, 600, 60))

	// 10:00+60 и 10:30+60 пересекаются
	assert.True(t, Overlaps(600, 60, 630, 60))
	assert.True(t, Overlaps(630, 60, 600, 60))

	assert.True(t, Overlaps(600, 60, 600, 60), "identical")
	assert.True(t, Overlaps(600, 120, 630, 15), "containing")
}

func TestHasConflict(t *testing.T) {
	occupied := []domain.OccupiedInterval{
		{StartMinute: 600, DurationMinutes: 60, Source: domain.SourceBooking},
		{StartMinute: 720, DurationMinutes: 60, Source: domain.SourceBreak},
	}

	assert.False(t, HasConflict(domain.OccupiedInterval{StartMinute: 660, DurationMinutes: 60}, occupied))
	assert.True(t, HasConflict(domain.OccupiedInterval{StartMinute: 690, DurationMinutes: 60}, occupied))
	assert.False(t, HasConflict(domain.OccupiedInterval{StartMinute: 660, DurationMinutes: 60}, nil))

	blocking, ok := FirstConflict(domain.OccupiedInterval{StartMinute: 750, DurationMinutes: 10}, occupied)
	assert.True(t, ok)
	assert.Equal(t, domain.SourceBreak, blocking.Source)
}

func TestFilterFree_PreservesOrder(t *testing.T) {
	candidates := []types.TimeString{"09:00", "10:00", "11:00", "12:00"}
	occupied := []domain.OccupiedInterval{{StartMinute: 630, DurationMinutes: 30}}

	free := FilterFree(candidates, 60, occupied)

	assert.Equal(t, []domain.AvailableSlot{
		{StartTime: "09:00", DurationMinutes: 60},
		{StartTime: "11:00", DurationMinutes: 60},
		{StartTime: "12:00", DurationMinutes: 60},
	}, free)
}
