package adminblocks

import (
	"context"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	Create(ctx context.Context, block *domain.AdminBlock) (*domain.AdminBlock, error)
	GetByID(ctx context.Context, id int64) (*domain.AdminBlock, error)
	ListOverlapping(ctx context.Context, from, to time.Time) ([]*domain.AdminBlock, error)
	Update(ctx context.Context, block *domain.AdminBlock, at time.Time) error
	Delete(ctx context.Context, id int64) error
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
