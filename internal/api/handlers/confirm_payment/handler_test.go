package confirm_payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	confirmReservation "github.com/yaduk2001/selling-sub001/internal/usecase/confirm_reservation"
	"github.com/yaduk2001/selling-sub001/pkg/logger"
)

type fakeUseCase struct {
	key  string
	ref  string
	resp *confirmReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *confirmReservation.Request) (*confirmReservation.Response, error) {
	f.key = req.CorrelationKey
	f.ref = req.TransactionRef
	return f.resp, f.err
}

func confirm(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/internal/payments/confirm", strings.NewReader(body)))
	return rec
}

func booking(duplicate bool) *confirmReservation.Response {
	return &confirmReservation.Response{
		BookingID:       7,
		ReservationID:   "r-1",
		ProductID:       "coaching-60",
		TransactionRef:  "cs_test_1",
		Date:            time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "11:00",
		DurationMinutes: 60,
		Status:          "confirmed",
		Duplicate:       duplicate,
	}
}

func TestHandler_CreatedThenDuplicate(t *testing.T) {
	uc := &fakeUseCase{resp: booking(false)}
	rec := confirm(uc, `{"correlationKey":"cs_test_1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "cs_test_1", uc.key)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.BookingID)
	assert.Equal(t, "2030-05-06", body.Date)

	rec = confirm(&fakeUseCase{resp: booking(true)}, `{"correlationKey":"cs_test_1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_PassesTransactionRef(t *testing.T) {
	uc := &fakeUseCase{resp: booking(false)}
	rec := confirm(uc, `{"correlationKey":"r-1","transactionRef":"cs_test_1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "r-1", uc.key)
	assert.Equal(t, "cs_test_1", uc.ref)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "empty key", err: confirmReservation.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "unknown", err: confirmReservation.ErrReservationNotFound, want: http.StatusNotFound},
		{name: "slot lost", err: confirmReservation.ErrReservationExpired, want: http.StatusGone},
		{name: "internal", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := confirm(&fakeUseCase{err: tt.err}, `{"correlationKey":"k"}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
