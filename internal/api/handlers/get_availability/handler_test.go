package get_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailability "github.com/yaduk2001/selling-sub001/internal/usecase/get_availability"
	"github.com/yaduk2001/selling-sub001/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailability.Request
	resp *getAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/products/{productId}/availability", NewHandler(uc, logger.Nop()).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailability.Response{
		Date:            time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC),
		ProductID:       "coaching-60",
		DurationMinutes: 60,
		Timezone:        "UTC",
		ViewerTimezone:  "Europe/Berlin",
		IsWorkingDay:    true,
		Slots: []getAvailability.Slot{
			{StartTime: "09:00", EndTime: "10:00"},
			{
				StartTime: "10:00",
				EndTime:   "11:00",
				StartAt:   time.Date(2030, 5, 6, 10, 0, 0, 0, time.UTC),
				EndAt:     time.Date(2030, 5, 6, 11, 0, 0, 0, time.UTC),
			},
		},
	}}

	rec := serve(uc, "/api/v1/products/coaching-60/availability?date=2030-05-06&duration=60&timezone=Europe/Berlin")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "coaching-60", uc.got.ProductID)
	assert.Equal(t, 60, uc.got.DurationMinutes)
	assert.Equal(t, "Europe/Berlin", uc.got.Timezone)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2030-05-06", body.Date)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "10:00", body.Slots[1].StartTime)
	assert.Equal(t, "Europe/Berlin", body.ViewerTimezone)
	assert.True(t, time.Date(2030, 5, 6, 10, 0, 0, 0, time.UTC).Equal(body.Slots[1].StartAt))
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		ucErr  error
		want   int
	}{
		{name: "missing date", target: "/api/v1/products/p/availability?duration=60", want: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/products/p/availability?date=06.05.2030&duration=60", want: http.StatusBadRequest},
		{name: "bad duration", target: "/api/v1/products/p/availability?date=2030-05-06&duration=hour", want: http.StatusBadRequest},
		{name: "past date", target: "/api/v1/products/p/availability?date=2020-05-06&duration=60", ucErr: getAvailability.ErrInvalidDate, want: http.StatusBadRequest},
		{name: "invalid input", target: "/api/v1/products/p/availability?date=2030-05-06&duration=7", ucErr: getAvailability.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", target: "/api/v1/products/p/availability?date=2030-05-06&duration=60", ucErr: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.ucErr}, tt.target)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
