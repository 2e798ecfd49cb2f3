package update_booking_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/yaduk2001/selling-sub001/internal/service/bookings"
	"github.com/yaduk2001/selling-sub001/internal/service/bookings/models"
	"github.com/yaduk2001/selling-sub001/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) UpdateStatus(_ context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: req.Status}, nil
}

func TestHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		err    error
		want   int
	}{
		{name: "cancelled", target: "/api/v1/admin/bookings/3/status", body: `{"status":"cancelled"}`, want: http.StatusOK},
		{name: "bad id", target: "/api/v1/admin/bookings/x/status", body: `{"status":"cancelled"}`, want: http.StatusBadRequest},
		{name: "not found", target: "/api/v1/admin/bookings/3/status", body: `{"status":"cancelled"}`, err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "unknown status", target: "/api/v1/admin/bookings/3/status", body: `{"status":"lost"}`, err: fmt.Errorf("%w: lost", bookings.ErrInvalidStatus), want: http.StatusBadRequest},
		{name: "final status", target: "/api/v1/admin/bookings/3/status", body: `{"status":"completed"}`, err: bookings.ErrInvalidTransition, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/api/v1/admin/bookings/{bookingId}/status", NewHandler(&fakeService{err: tt.err}, logger.Nop()).Handle)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, tt.target, strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
