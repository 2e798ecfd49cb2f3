package get_availability

import (
	"fmt"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/slots"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProductID == "" || len(req.ProductID) > domain.MaxProductIDLength {
		return fmt.Errorf("%w: productId must be 1..%d characters", ErrInvalidInput, domain.MaxProductIDLength)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinSessionDurationMinutes || req.DurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	return nil
}

// validateDate сравнивает календарные даты в таймзоне бизнеса
func validateDate(date time.Time, today string, advanceBookingDays int) error {
	day := date.Format(domain.DateFormat)
	if day < today {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	todayDate, err := slots.ParseDate(today)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if day > todayDate.AddDate(0, 0, advanceBookingDays).Format(domain.DateFormat) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// filterByNotice оставляет слоты, начинающиеся не раньше now + minNotice (только для сегодняшней даты)
func filterByNotice(free []domain.AvailableSlot, localNow time.Time, minNoticeMinutes int) []domain.AvailableSlot {
	earliest := localNow.Hour()*60 + localNow.Minute() + minNoticeMinutes
	if localNow.Second() > 0 || localNow.Nanosecond() > 0 {
		earliest++
	}

	result := make([]domain.AvailableSlot, 0, len(free))
	for _, s := range free {
		if s.StartTime.Minutes() >= earliest {
			result = append(result, s)
		}
	}
	return result
}

// viewerLocation таймзона покупателя; nil, если она не задана
func viewerLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return nil, nil
	}
	loc, err := slots.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return loc, nil
}

// toSlots переводит слоты бизнеса в моменты времени в таймзоне покупателя
func toSlots(date time.Time, free []domain.AvailableSlot, loc, viewer *time.Location) ([]Slot, error) {
	result := make([]Slot, 0, len(free))
	for _, s := range free {
		end, err := s.EndTime()
		if err != nil {
			return nil, err
		}
		startAt := s.StartTime.OnDate(date, loc)
		result = append(result, Slot{
			StartTime: s.StartTime,
			EndTime:   end,
			StartAt:   startAt.In(viewer),
			EndAt:     startAt.Add(time.Duration(s.DurationMinutes) * time.Minute).In(viewer),
		})
	}
	return result, nil
}
