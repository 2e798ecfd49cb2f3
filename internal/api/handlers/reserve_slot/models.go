package reserve_slot

import (
	"errors"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/slots"
	reserveSlot "github.com/yaduk2001/selling-sub001/internal/usecase/reserve_slot"
	"github.com/yaduk2001/selling-sub001/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	ProductID       string  `json:"productId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
}

// ReservationResponse HTTP response model. securityToken нужен для всех последующих обращений к резерву.
type ReservationResponse struct {
	ReservationID   string    `json:"reservationId"`
	SecurityToken   string    `json:"securityToken"`
	ProductID       string    `json:"productId"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest() (*reserveSlot.Request, error) {
	date, err := slots.ParseDate(r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &reserveSlot.Request{
		ProductID:       r.ProductID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		CustomerEmail:   r.CustomerEmail,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *ReservationResponse {
	return &ReservationResponse{
		ReservationID:   resp.ReservationID,
		SecurityToken:   resp.SecurityToken,
		ProductID:       resp.ProductID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ExpiresAt:       resp.ExpiresAt.UTC(),
	}
}
