package slots

import (
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

// DayState всё, что занимает время в одну дату бизнеса
type DayState struct {
	Date         time.Time
	Location     *time.Location
	Hours        *domain.BusinessHours
	Bookings     []*domain.Booking
	Reservations []*domain.Reservation
	Blocks       []*domain.AdminBlock
}

// Occupied собирает занятые интервалы на дату: активные бронирования, живые резервы
// (просроченный pending-резерв отсутствует независимо от фоновой очистки),
// административные блокировки по локальной дате и перерывы.
func (s *DayState) Occupied(now time.Time) []domain.OccupiedInterval {
	date := s.Date.Format(domain.DateFormat)
	occupied := make([]domain.OccupiedInterval, 0, len(s.Bookings)+len(s.Reservations)+len(s.Blocks))

	for _, b := range s.Bookings {
		if !b.IsActive() || b.BusinessDate.Format(domain.DateFormat) != date {
			continue
		}
		occupied = append(occupied, b.Interval())
	}

	for _, r := range s.Reservations {
		if !r.IsLive(now) || r.BusinessDate.Format(domain.DateFormat) != date {
			continue
		}
		occupied = append(occupied, r.Interval())
	}

	for _, block := range s.Blocks {
		if interval, ok := BlockIntervalOnDate(block, s.Date, s.Location); ok {
			occupied = append(occupied, interval)
		}
	}

	if s.Hours != nil && s.Hours.IsWorkingDay {
		occupied = append(occupied, s.Hours.BreakIntervals()...)
	}

	return occupied
}

// Available свободные слоты длительностью durationMinutes. Нерабочий день всегда пуст,
// даже если в хранилище есть записи на эту дату.
func (s *DayState) Available(durationMinutes int, now time.Time) ([]domain.AvailableSlot, error) {
	if s.Hours == nil || !s.Hours.IsWorkingDay {
		return []domain.AvailableSlot{}, nil
	}

	candidates, err := Generate(durationMinutes, s.Hours.StartTime, s.Hours.EndTime)
	if err != nil {
		return nil, err
	}

	return FilterFree(candidates, durationMinutes, s.Occupied(now)), nil
}

// IsFree проверяет конкретный интервал против занятости дня
func (s *DayState) IsFree(candidate domain.OccupiedInterval, now time.Time) (bool, domain.OccupiedInterval) {
	blocking, conflict := FirstConflict(candidate, s.Occupied(now))
	return !conflict, blocking
}
