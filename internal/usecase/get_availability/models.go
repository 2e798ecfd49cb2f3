package get_availability

import (
	"time"

	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// Settings ограничения бронирования из конфигурации
type Settings struct {
	DefaultTimezone    string
	AdvanceBookingDays int // 0 = без ограничений
	MinNoticeMinutes   int
}

// Request модель запроса свободных слотов
type Request struct {
	ProductID       string
	Date            time.Time // календарная дата бизнеса (полночь UTC)
	DurationMinutes int
	Timezone        string // таймзона покупателя для StartAt/EndAt; на занятость не влияет
}

// Response свободные слоты в хронологическом порядке
type Response struct {
	Date            time.Time
	ProductID       string
	DurationMinutes int
	Timezone        string // таймзона бизнеса
	ViewerTimezone  string
	IsWorkingDay    bool
	DefaultHours    bool // использовано расписание по умолчанию
	Slots           []Slot
}

// Slot свободный слот: время бизнеса и те же моменты в таймзоне покупателя
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	StartAt   time.Time
	EndAt     time.Time
}
