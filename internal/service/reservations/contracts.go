package reservations

import (
	"context"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

// ReservationRepository интерфейс репозитория резервов
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	AttachTransaction(ctx context.Context, id, transactionRef string, at time.Time) error
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ClaimRepository интерфейс репозитория захватов ячеек
type ClaimRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики очистки
type Metrics interface {
	AddSwept(n int64)
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
