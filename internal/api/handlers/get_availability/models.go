package get_availability

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/slots"
	getAvailability "github.com/yaduk2001/selling-sub001/internal/usecase/get_availability"
)

var (
	errMissingDate     = errors.New("date is required")
	errInvalidDate     = errors.New("invalid date")
	errMissingDuration = errors.New("duration is required")
	errInvalidDuration = errors.New("invalid duration")
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ProductID       string         `json:"productId"`
	Date            string         `json:"date"` // "2025-10-15"
	DurationMinutes int            `json:"durationMinutes"`
	Timezone        string         `json:"timezone"`
	ViewerTimezone  string         `json:"viewerTimezone"`
	IsWorkingDay    bool           `json:"isWorkingDay"`
	DefaultHours    bool           `json:"defaultHours"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse свободный слот: startTime/endTime в таймзоне бизнеса, startAt/endAt в таймзоне покупателя
type SlotResponse struct {
	StartTime string    `json:"startTime"` // "10:00"
	EndTime   string    `json:"endTime"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
}

// ToUseCaseRequest собирает запрос use case из пути и query параметров
func ToUseCaseRequest(productID, dateStr, durationStr, timezone string) (*getAvailability.Request, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, errMissingDate
	}
	date, err := slots.ParseDate(dateStr)
	if err != nil {
		return nil, errInvalidDate
	}

	durationStr = strings.TrimSpace(durationStr)
	if durationStr == "" {
		return nil, errMissingDuration
	}
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		return nil, errInvalidDuration
	}

	return &getAvailability.Request{
		ProductID:       productID,
		Date:            date,
		DurationMinutes: duration,
		Timezone:        strings.TrimSpace(timezone),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		ProductID:       resp.ProductID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Timezone:        resp.Timezone,
		ViewerTimezone:  resp.ViewerTimezone,
		IsWorkingDay:    resp.IsWorkingDay,
		DefaultHours:    resp.DefaultHours,
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			StartAt:   s.StartAt,
			EndAt:     s.EndAt,
		})
	}
	return result
}
