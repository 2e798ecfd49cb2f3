package businesshours

import (
	"context"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

// HoursRepository интерфейс репозитория расписания
type HoursRepository interface {
	GetByWeekday(ctx context.Context, weekday time.Weekday) (*domain.BusinessHours, error)
	List(ctx context.Context) ([]*domain.BusinessHours, error)
	Upsert(ctx context.Context, hours *domain.BusinessHours) error
}

// HoursCache интерфейс кэша расписания; nil, nil означает промах
type HoursCache interface {
	Get(ctx context.Context, weekday time.Weekday) (*domain.BusinessHours, error)
	Set(ctx context.Context, hours *domain.BusinessHours) error
	Invalidate(ctx context.Context, weekday time.Weekday) error
}

// Metrics счётчики, которые пишет сервис
type Metrics interface {
	IncHoursFallback()
	IncHoursCacheLookup(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}
