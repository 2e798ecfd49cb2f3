package confirm_reservation

import (
	"time"

	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// Settings параметры подтверждения из конфигурации
type Settings struct {
	DefaultTimezone string
}

// Request событие об оплате: ключ транзакции (payment session id) или ID резерва.
// TransactionRef задаётся, когда поиск идёт по ID резерва, а сессия к нему не привязана.
type Request struct {
	CorrelationKey string
	TransactionRef string
}

// Response бронирование, соответствующее резерву
type Response struct {
	BookingID       int64
	ReservationID   string
	ProductID       string
	TransactionRef  string
	CustomerEmail   *string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	CreatedAt       time.Time
	Duplicate       bool // бронирование уже существовало
}
