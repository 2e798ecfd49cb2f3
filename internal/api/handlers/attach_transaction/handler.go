package attach_transaction

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yaduk2001/selling-sub001/internal/api/handlers"
	"github.com/yaduk2001/selling-sub001/internal/service/reservations"
	"github.com/yaduk2001/selling-sub001/internal/service/reservations/models"
)

const (
	msgMissingToken       = "отсутствует токен резерва"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный идентификатор транзакции"
	msgNotFound           = "резерв не найден"
	msgExpired            = "время удержания резерва истекло"
	msgAlreadyAttached    = "к резерву уже привязана другая транзакция"
	msgAlreadyConfirmed   = "резерв уже подтверждён"
	msgRefInUse           = "транзакция уже привязана к другому резерву"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/transaction
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	token := r.Header.Get(handlers.ReservationTokenHeader)
	if token == "" {
		h.logger.Warn("POST /reservations/{id}/transaction - Missing token: reservation_id=%s", reservationID)
		handlers.RespondUnauthorized(w, msgMissingToken)
		return
	}

	var req models.AttachTransactionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/transaction - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservation, err := h.service.AttachTransaction(r.Context(), reservationID, token, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/transaction - Invalid input: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/transaction - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrReservationExpired):
			h.logger.Warn("POST /reservations/{id}/transaction - Reservation expired: reservation_id=%s", reservationID)
			handlers.RespondGone(w, msgExpired)

		case errors.Is(err, reservations.ErrTransactionAlreadyAttached):
			h.logger.Warn("POST /reservations/{id}/transaction - Another transaction attached: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgAlreadyAttached)

		case errors.Is(err, reservations.ErrAlreadyConfirmed):
			h.logger.Warn("POST /reservations/{id}/transaction - Already confirmed: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgAlreadyConfirmed)

		case errors.Is(err, reservations.ErrTransactionRefInUse):
			h.logger.Warn("POST /reservations/{id}/transaction - Transaction ref in use: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgRefInUse)

		default:
			h.logger.Error("POST /reservations/{id}/transaction - Failed to attach transaction: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/transaction - Transaction attached: reservation_id=%s", reservationID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
