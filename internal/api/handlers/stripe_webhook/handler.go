package stripe_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/yaduk2001/selling-sub001/internal/api/handlers"
	confirmReservation "github.com/yaduk2001/selling-sub001/internal/usecase/confirm_reservation"
)

const (
	maxBodyBytes = int64(65536)

	signatureHeader = "Stripe-Signature"

	eventCheckoutCompleted     = "checkout.session.completed"
	eventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"

	msgUnreadableBody   = "не удалось прочитать тело запроса"
	msgInvalidSignature = "некорректная подпись события"
	msgInvalidEvent     = "некорректные данные события"
)

// Handler принимает события Stripe Checkout и превращает оплаченную сессию в бронирование
type Handler struct {
	useCase ConfirmReservationUseCase
	secret  string
	logger  Logger
}

func NewHandler(useCase ConfirmReservationUseCase, secret string, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		secret:  secret,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/stripe
// Ошибки, которые не исправит повторная доставка, подтверждаются 200, иначе Stripe будет слать событие снова.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgUnreadableBody)
		return
	}

	event, err := webhook.ConstructEventWithOptions(payload, r.Header.Get(signatureHeader), h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Signature verification failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSignature)
		return
	}

	switch event.Type {
	case eventCheckoutCompleted, eventAsyncPaymentSucceeded:
	default:
		h.logger.Info("POST /webhooks/stripe - Ignoring event: id=%s, type=%s", event.ID, event.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	var sess stripe.CheckoutSession
	if event.Data == nil || json.Unmarshal(event.Data.Raw, &sess) != nil || sess.ID == "" {
		h.logger.Warn("POST /webhooks/stripe - Malformed checkout session: event_id=%s", event.ID)
		handlers.RespondBadRequest(w, msgInvalidEvent)
		return
	}

	// Асинхронные способы оплаты: ждём checkout.session.async_payment_succeeded
	if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		h.logger.Info("POST /webhooks/stripe - Session %s completed but unpaid, waiting for payment", sess.ID)
		w.WriteHeader(http.StatusOK)
		return
	}

	result, err := h.confirm(r, &sess)
	if err != nil {
		switch {
		case errors.Is(err, confirmReservation.ErrReservationNotFound):
			h.logger.Warn("POST /webhooks/stripe - No reservation for session: session_id=%s, client_reference_id=%s",
				sess.ID, sess.ClientReferenceID)
			w.WriteHeader(http.StatusOK)

		case errors.Is(err, confirmReservation.ErrReservationExpired):
			h.logger.Error("POST /webhooks/stripe - Paid session lost its slot, refund required: session_id=%s", sess.ID)
			w.WriteHeader(http.StatusOK)

		default:
			h.logger.Error("POST /webhooks/stripe - Failed to confirm reservation: session_id=%s, error=%v", sess.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /webhooks/stripe - Reservation confirmed: session_id=%s, reservation_id=%s, booking_id=%d, duplicate=%t",
		sess.ID, result.ReservationID, result.BookingID, result.Duplicate)
	w.WriteHeader(http.StatusOK)
}

// confirm ищет резерв по ID сессии (привязанной через /transaction), затем по client_reference_id
func (h *Handler) confirm(r *http.Request, sess *stripe.CheckoutSession) (*confirmReservation.Response, error) {
	result, err := h.useCase.Execute(r.Context(), &confirmReservation.Request{CorrelationKey: sess.ID})
	if err == nil || !errors.Is(err, confirmReservation.ErrReservationNotFound) || sess.ClientReferenceID == "" {
		return result, err
	}
	return h.useCase.Execute(r.Context(), &confirmReservation.Request{
		CorrelationKey: sess.ClientReferenceID,
		TransactionRef: sess.ID,
	})
}
