package reserve_slot

import (
	"context"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/slotclaim"
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

// ReservationRepository интерфейс репозитория резервов
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
}

// ClaimRepository интерфейс репозитория захватов ячеек
type ClaimRepository interface {
	DeleteExpiredIn(ctx context.Context, date time.Time, buckets []int, now time.Time) (int64, error)
	Claim(ctx context.Context, date time.Time, buckets []int, kind slotclaim.OwnerKind, ownerID string, expiresAt *time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчик исходов резервирования
type Metrics interface {
	IncReservation(outcome string)
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
