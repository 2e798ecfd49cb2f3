package reserve_slot

import (
	"time"

	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// Settings ограничения резервирования из конфигурации
type Settings struct {
	DefaultTimezone    string
	HoldDuration       time.Duration
	AdvanceBookingDays int // 0 = без ограничений
	MinNoticeMinutes   int
}

// Request модель запроса на резервирование слота
type Request struct {
	ProductID       string
	Date            time.Time // календарная дата бизнеса (полночь UTC)
	StartTime       types.TimeString
	DurationMinutes int
	CustomerEmail   *string
}

// Response созданный резерв. SecurityToken возвращается только здесь.
type Response struct {
	ReservationID   string
	SecurityToken   string
	ProductID       string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	ExpiresAt       time.Time
}
