package admin_blocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaduk2001/selling-sub001/internal/service/adminblocks"
	"github.com/yaduk2001/selling-sub001/internal/service/adminblocks/models"
	"github.com/yaduk2001/selling-sub001/pkg/logger"
)

type fakeService struct {
	blocks map[int64]*models.BlockResponse
	nextID int64
	from   time.Time
	to     time.Time
}

func newFakeService() *fakeService {
	return &fakeService{blocks: map[int64]*models.BlockResponse{}, nextID: 1}
}

func (f *fakeService) Create(_ context.Context, req *models.BlockRequest) (*models.BlockResponse, error) {
	if !req.StartAt.Before(req.EndAt) {
		return nil, fmt.Errorf("%w: startAt must be before endAt", adminblocks.ErrInvalidInput)
	}
	b := &models.BlockResponse{ID: f.nextID, StartAt: req.StartAt.UTC(), EndAt: req.EndAt.UTC(), Label: req.Label, Away: req.Away}
	f.blocks[b.ID] = b
	f.nextID++
	return b, nil
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*models.BlockResponse, error) {
	b, ok := f.blocks[id]
	if !ok {
		return nil, adminblocks.ErrBlockNotFound
	}
	return b, nil
}

func (f *fakeService) List(_ context.Context, from, to time.Time) (*models.BlockListResponse, error) {
	f.from, f.to = from, to
	resp := &models.BlockListResponse{Blocks: []models.BlockResponse{}}
	for _, b := range f.blocks {
		resp.Blocks = append(resp.Blocks, *b)
	}
	return resp, nil
}

func (f *fakeService) Update(ctx context.Context, id int64, req *models.BlockRequest) (*models.BlockResponse, error) {
	if _, ok := f.blocks[id]; !ok {
		return nil, adminblocks.ErrBlockNotFound
	}
	f.blocks[id].Label = req.Label
	return f.blocks[id], nil
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	if _, ok := f.blocks[id]; !ok {
		return adminblocks.ErrBlockNotFound
	}
	delete(f.blocks, id)
	return nil
}

func newRouter(svc BlockService) *mux.Router {
	h := NewHandler(svc, logger.Nop())
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/admin/blocks", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/admin/blocks", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/admin/blocks/{blockId}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/admin/blocks/{blockId}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/admin/blocks/{blockId}", h.Delete).Methods(http.MethodDelete)
	return router
}

func do(router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestHandler_CRUD(t *testing.T) {
	svc := newFakeService()
	router := newRouter(svc)

	rec := do(router, http.MethodPost, "/api/v1/admin/blocks",
		`{"startAt":"2030-05-06T23:00:00-05:00","endAt":"2030-05-07T01:00:00-05:00","label":"retreat","away":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.BlockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, time.Date(2030, 5, 7, 4, 0, 0, 0, time.UTC), created.StartAt)
	assert.True(t, created.Away)

	rec = do(router, http.MethodGet, "/api/v1/admin/blocks/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodPut, "/api/v1/admin/blocks/1",
		`{"startAt":"2030-05-07T04:00:00Z","endAt":"2030-05-07T06:00:00Z","label":"moved"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "moved", svc.blocks[1].Label)

	rec = do(router, http.MethodGet, "/api/v1/admin/blocks?from=2030-05-01T00:00:00Z&to=2030-06-01T00:00:00Z", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), svc.to.UTC())

	rec = do(router, http.MethodDelete, "/api/v1/admin/blocks/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(router, http.MethodDelete, "/api/v1/admin/blocks/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_BadRequests(t *testing.T) {
	router := newRouter(newFakeService())

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "list without range", method: http.MethodGet, target: "/api/v1/admin/blocks"},
		{name: "bad id", method: http.MethodGet, target: "/api/v1/admin/blocks/abc"},
		{name: "malformed body", method: http.MethodPost, target: "/api/v1/admin/blocks", body: `{"startAt":`},
		{name: "inverted interval", method: http.MethodPost, target: "/api/v1/admin/blocks",
			body: `{"startAt":"2030-05-07T06:00:00Z","endAt":"2030-05-07T04:00:00Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
