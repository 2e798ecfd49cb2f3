package models

import (
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/pkg/types"
)

// AttachTransactionRequest запрос на привязку платёжной транзакции
type AttachTransactionRequest struct {
	TransactionRef string `json:"transactionRef"`
}

// ReservationResponse резерв с эффективным статусом на момент запроса
type ReservationResponse struct {
	ReservationID   string           `json:"reservationId"`
	ProductID       string           `json:"productId"`
	Date            string           `json:"date"`
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Status          string           `json:"status"`
	ExpiresAt       time.Time        `json:"expiresAt"`
	TransactionRef  *string          `json:"transactionRef,omitempty"`
	ConfirmedAt     *time.Time       `json:"confirmedAt,omitempty"`
}

// SweepResult итог фоновой очистки
type SweepResult struct {
	Expired       int64
	ClaimsDeleted int64
	Purged        int64
}

// FromDomainReservation конвертирует резерв; статус вычисляется на момент now
func FromDomainReservation(r *domain.Reservation, now time.Time) *ReservationResponse {
	if r == nil {
		return nil
	}
	end, err := r.StartTime.AddMinutes(r.DurationMinutes)
	if err != nil {
		end = r.StartTime
	}
	return &ReservationResponse{
		ReservationID:   r.ID,
		ProductID:       r.ProductID,
		Date:            r.BusinessDate.Format(domain.DateFormat),
		StartTime:       r.StartTime,
		EndTime:         end,
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.EffectiveStatus(now)),
		ExpiresAt:       r.ExpiresAt.UTC(),
		TransactionRef:  r.TransactionRef,
		ConfirmedAt:     r.ConfirmedAt,
	}
}
