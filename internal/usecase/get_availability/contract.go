package get_availability

import (
	"context"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/slots"
)

// HoursResolver расписание на день недели с политикой по умолчанию
type HoursResolver interface {
	Resolve(ctx context.Context, weekday time.Weekday) (*domain.BusinessHours, bool)
}

// DayLoader занятость одной даты
type DayLoader interface {
	LoadDay(ctx context.Context, date time.Time, loc *time.Location, hours *domain.BusinessHours, now time.Time) (*slots.DayState, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
