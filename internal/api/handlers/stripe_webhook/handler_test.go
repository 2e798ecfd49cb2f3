package stripe_webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"

	confirmReservation "github.com/yaduk2001/selling-sub001/internal/usecase/confirm_reservation"
	"github.com/yaduk2001/selling-sub001/pkg/logger"
)

const secret = "whsec_test_secret"

type fakeUseCase struct {
	keys  []string
	refs  []string
	known map[string]bool
	err   error
}

func (f *fakeUseCase) Execute(_ context.Context, req *confirmReservation.Request) (*confirmReservation.Response, error) {
	f.keys = append(f.keys, req.CorrelationKey)
	f.refs = append(f.refs, req.TransactionRef)
	if f.err != nil {
		return nil, f.err
	}
	if !f.known[req.CorrelationKey] {
		return nil, confirmReservation.ErrReservationNotFound
	}
	return &confirmReservation.Response{BookingID: 1, ReservationID: "r-1"}, nil
}

func event(eventType, paymentStatus string) []byte {
	return []byte(fmt.Sprintf(`{
  "id": "evt_1",
  "object": "event",
  "type": %q,
  "data": {"object": {"id": "cs_test_1", "object": "checkout.session", "client_reference_id": "r-1", "payment_status": %q}}
}`, eventType, paymentStatus))
}

func deliver(uc *fakeUseCase, payload []byte, signWith string) *httptest.ResponseRecorder {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: signWith})

	r := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", bytes.NewReader(signed.Payload))
	r.Header.Set("Stripe-Signature", signed.Header)
	rec := httptest.NewRecorder()
	NewHandler(uc, secret, logger.Nop()).Handle(rec, r)
	return rec
}

func TestHandler_ConfirmsBySessionID(t *testing.T) {
	uc := &fakeUseCase{known: map[string]bool{"cs_test_1": true}}
	rec := deliver(uc, event("checkout.session.completed", "paid"), secret)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"cs_test_1"}, uc.keys)
}

func TestHandler_FallsBackToClientReference(t *testing.T) {
	uc := &fakeUseCase{known: map[string]bool{"r-1": true}}
	rec := deliver(uc, event("checkout.session.completed", "paid"), secret)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"cs_test_1", "r-1"}, uc.keys)
	// сессия передаётся вместе с ID резерва, чтобы бронирование хранило её
	assert.Equal(t, []string{"", "cs_test_1"}, uc.refs)
}

func TestHandler_InvalidSignature(t *testing.T) {
	uc := &fakeUseCase{}
	rec := deliver(uc, event("checkout.session.completed", "paid"), "whsec_other")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, uc.keys)
}

func TestHandler_IgnoresOtherEventsAndUnpaidSessions(t *testing.T) {
	uc := &fakeUseCase{}

	rec := deliver(uc, event("payment_intent.created", "paid"), secret)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = deliver(uc, event("checkout.session.completed", "unpaid"), secret)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, uc.keys)
}

func TestHandler_AsyncPaymentSucceeded(t *testing.T) {
	uc := &fakeUseCase{known: map[string]bool{"cs_test_1": true}}
	rec := deliver(uc, event("checkout.session.async_payment_succeeded", "paid"), secret)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, uc.keys, 1)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "expired is acknowledged", err: confirmReservation.ErrReservationExpired, want: http.StatusOK},
		{name: "internal asks for redelivery", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := deliver(&fakeUseCase{err: tt.err}, event("checkout.session.completed", "paid"), secret)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
