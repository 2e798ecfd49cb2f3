package get_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaduk2001/selling-sub001/internal/api/handlers"
	"github.com/yaduk2001/selling-sub001/internal/service/reservations"
	"github.com/yaduk2001/selling-sub001/internal/service/reservations/models"
	"github.com/yaduk2001/selling-sub001/pkg/logger"
)

type fakeService struct {
	token  string
	status string
	err    error
}

func (f *fakeService) Get(_ context.Context, id, token string) (*models.ReservationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if token != f.token {
		return nil, reservations.ErrReservationNotFound
	}
	return &models.ReservationResponse{ReservationID: id, Status: f.status}, nil
}

func get(svc *fakeService, token string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/reservations/{reservationId}", NewHandler(svc, logger.Nop()).Handle)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/r-1", nil)
	if token != "" {
		r.Header.Set(handlers.ReservationTokenHeader, token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandler_ReturnsEffectiveStatus(t *testing.T) {
	rec := get(&fakeService{token: "tok", status: "expired"}, "tok")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "r-1", body.ReservationID)
	assert.Equal(t, "expired", body.Status)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, get(&fakeService{token: "tok"}, "").Code)
	assert.Equal(t, http.StatusNotFound, get(&fakeService{token: "tok"}, "guess").Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: errors.New("db down")}, "tok").Code)
}
