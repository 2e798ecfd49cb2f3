package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/yaduk2001/selling-sub001/internal/api/handlers"
	confirmReservation "github.com/yaduk2001/selling-sub001/internal/usecase/confirm_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "ключ корреляции обязателен"
	msgNotFound           = "резерв не найден"
	msgExpired            = "резерв истёк, а слот уже занят"
)

type Handler struct {
	useCase ConfirmReservationUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/payments/confirm
// 201 для нового бронирования, 200 для повторного события.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/payments/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmReservation.Request{
		CorrelationKey: req.CorrelationKey,
		TransactionRef: req.TransactionRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmReservation.ErrInvalidInput):
			h.logger.Warn("POST /internal/payments/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, confirmReservation.ErrReservationNotFound):
			h.logger.Warn("POST /internal/payments/confirm - Reservation not found: key=%s", req.CorrelationKey)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmReservation.ErrReservationExpired):
			h.logger.Error("POST /internal/payments/confirm - Paid reservation lost its slot: key=%s", req.CorrelationKey)
			handlers.RespondGone(w, msgExpired)

		default:
			h.logger.Error("POST /internal/payments/confirm - Failed to confirm: key=%s, error=%v", req.CorrelationKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}

	h.logger.Info("POST /internal/payments/confirm - Reservation confirmed: reservation_id=%s, booking_id=%d, duplicate=%t",
		result.ReservationID, result.BookingID, result.Duplicate)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
