package slots

import (
	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// Overlaps полуоткрытое пересечение [s1, s1+d1) и [s2, s2+d2): касание концами не конфликт
func Overlaps(s1, d1, s2, d2 int) bool {
	return s1 < s2+d2 && s1+d1 > s2
}

// HasConflict true, если кандидат пересекается хотя бы с одним занятым интервалом
func HasConflict(candidate domain.OccupiedInterval, occupied []domain.OccupiedInterval) bool {
	for _, o := range occupied {
		if Overlaps(candidate.StartMinute, candidate.DurationMinutes, o.StartMinute, o.DurationMinutes) {
			return true
		}
	}
	return false
}

// FirstConflict возвращает первый пересекающийся интервал (для логов)
func FirstConflict(candidate domain.OccupiedInterval, occupied []domain.OccupiedInterval) (domain.OccupiedInterval, bool) {
	for _, o := range occupied {
		if Overlaps(candidate.StartMinute, candidate.DurationMinutes, o.StartMinute, o.DurationMinutes) {
			return o, true
		}
	}
	return domain.OccupiedInterval{}, false
}

// FilterFree оставляет кандидатов, не пересекающихся с занятыми интервалами, в исходном порядке
func FilterFree(candidates []types.TimeString, durationMinutes int, occupied []domain.OccupiedInterval) []domain.AvailableSlot {
	free := make([]domain.AvailableSlot, 0, len(candidates))
	for _, c := range candidates {
		candidate := domain.OccupiedInterval{StartMinute: c.Minutes(), DurationMinutes: durationMinutes}
		if HasConflict(candidate, occupied) {
			continue
		}
		free = append(free, domain.AvailableSlot{StartTime: c, DurationMinutes: durationMinutes})
	}
	return free
}
