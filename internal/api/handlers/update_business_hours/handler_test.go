package update_business_hours

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaduk2001/selling-sub001/internal/service/businesshours"
	"github.com/yaduk2001/selling-sub001/internal/service/businesshours/models"
	"github.com/yaduk2001/selling-sub001/pkg/logger"
)

type fakeService struct {
	weekday time.Weekday
	req     *models.UpdateHoursRequest
	err     error
}

func (f *fakeService) Update(_ context.Context, weekday time.Weekday, req *models.UpdateHoursRequest) (*models.HoursResponse, error) {
	f.weekday, f.req = weekday, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.HoursResponse{Weekday: int(weekday), IsWorkingDay: req.IsWorkingDay}, nil
}

func put(svc *fakeService, weekday, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/admin/business-hours/{weekday}", NewHandler(svc, logger.Nop()).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/admin/business-hours/"+weekday, strings.NewReader(body)))
	return rec
}

const body = `{"isWorkingDay":true,"startTime":"09:00","endTime":"17:00","breaks":[{"start":"12:00","end":"13:00"}],"timezone":"Europe/Berlin"}`

func TestHandler_Update(t *testing.T) {
	svc := &fakeService{}
	rec := put(svc, "1", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Monday, svc.weekday)
	require.Len(t, svc.req.Breaks, 1)
	assert.Equal(t, "12:00", svc.req.Breaks[0].Start)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		weekday string
		body    string
		err     error
		want    int
	}{
		{name: "weekday out of range", weekday: "7", body: body, want: http.StatusBadRequest},
		{name: "weekday not a number", weekday: "monday", body: body, want: http.StatusBadRequest},
		{name: "malformed body", weekday: "1", body: `{`, want: http.StatusBadRequest},
		{name: "invalid schedule", weekday: "1", body: body, err: fmt.Errorf("%w: break outside hours", businesshours.ErrInvalidInput), want: http.StatusBadRequest},
		{name: "internal", weekday: "1", body: body, err: businesshours.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := put(&fakeService{err: tt.err}, tt.weekday, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
