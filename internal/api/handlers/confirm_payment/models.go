package confirm_payment

import (
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	confirmReservation "github.com/yaduk2001/selling-sub001/internal/usecase/confirm_reservation"
)

// ConfirmPaymentRequest HTTP request model: ключ транзакции или ID резерва,
// transactionRef сохраняется в бронировании, если ключ это ID резерва
type ConfirmPaymentRequest struct {
	CorrelationKey string `json:"correlationKey"`
	TransactionRef string `json:"transactionRef,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID       int64     `json:"bookingId"`
	ReservationID   string    `json:"reservationId"`
	ProductID       string    `json:"productId"`
	TransactionRef  string    `json:"transactionRef"`
	CustomerEmail   *string   `json:"customerEmail,omitempty"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	Duplicate       bool      `json:"duplicate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmReservation.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:       resp.BookingID,
		ReservationID:   resp.ReservationID,
		ProductID:       resp.ProductID,
		TransactionRef:  resp.TransactionRef,
		CustomerEmail:   resp.CustomerEmail,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt,
		Duplicate:       resp.Duplicate,
	}
}
