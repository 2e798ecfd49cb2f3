package reserve_slot

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/slots"
	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProductID == "" || len(req.ProductID) > domain.MaxProductIDLength {
		return fmt.Errorf("%w: productId must be 1..%d characters", ErrInvalidInput, domain.MaxProductIDLength)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < domain.MinSessionDurationMinutes || req.DurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	if req.CustomerEmail != nil {
		if _, err := mail.ParseAddress(*req.CustomerEmail); err != nil {
			return fmt.Errorf("%w: invalid customerEmail: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validateDate сравнивает календарные даты в таймзоне бизнеса
func validateDate(date time.Time, today string, advanceBookingDays int) error {
	day := date.Format(domain.DateFormat)
	if day < today {
		return ErrInvalidDate
	}

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

// validateSlot проверяет сетку слотов для этой длительности
func validateSlot(hours *domain.BusinessHours, startTime types.TimeString, durationMinutes int) error {
	if !slots.IsOnGrid(durationMinutes, hours.StartTime, hours.EndTime, startTime) {
		return fmt.Errorf("%w: %s is not a %d-minute slot within %s-%s",
			ErrInvalidTimeSlot, startTime, durationMinutes, hours.StartTime, hours.EndTime)
	}
	return nil
}

// validateNotice для сегодняшней даты слот должен начинаться не раньше now + minNotice
func validateNotice(startTime types.TimeString, localNow time.Time, minNoticeMinutes int) error {
	earliest := localNow.Hour()*60 + localNow.Minute() + minNoticeMinutes
	if localNow.Second() > 0 || localNow.Nanosecond() > 0 {
		earliest++
	}
	if startTime.Minutes() < earliest {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}
	return nil
}
