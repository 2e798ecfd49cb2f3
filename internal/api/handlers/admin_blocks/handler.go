package admin_blocks

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/yaduk2001/selling-sub001/internal/api/handlers"
	"github.com/yaduk2001/selling-sub001/internal/service/adminblocks"
	"github.com/yaduk2001/selling-sub001/internal/service/adminblocks/models"
)

const (
	msgInvalidBlockID     = "некорректный ID блокировки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRange       = "параметры from и to обязательны, формат RFC 3339"
	msgInvalidData        = "некорректные данные блокировки"
	msgNotFound           = "блокировка не найдена"
)

// Handler CRUD административных блокировок календаря
type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/blocks?from=...&to=...
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	from, errFrom := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	to, errTo := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /admin/blocks - Invalid range: from=%q, to=%q", r.URL.Query().Get("from"), r.URL.Query().Get("to"))
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.service.List(r.Context(), from, to)
	if err != nil {
		h.respondError(w, "GET /admin/blocks", 0, err)
		return
	}

	h.logger.Info("GET /admin/blocks - Blocks retrieved: count=%d", len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/admin/blocks/{blockId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.blockID(w, r, "GET /admin/blocks/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /admin/blocks/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/blocks
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.BlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/blocks", 0, err)
		return
	}

	h.logger.Info("POST /admin/blocks - Block created: block_id=%d, away=%t", result.ID, result.Away)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/blocks/{blockId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.blockID(w, r, "PUT /admin/blocks/{id}")
	if !ok {
		return
	}

	var req models.BlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/blocks/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/blocks/{id}", id, err)
		return
	}

	h.logger.Info("PUT /admin/blocks/{id} - Block updated: block_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/blocks/{blockId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.blockID(w, r, "DELETE /admin/blocks/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/blocks/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /admin/blocks/{id} - Block deleted: block_id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) blockID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["blockId"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("%s - Invalid block ID: %q", route, mux.Vars(r)["blockId"])
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, adminblocks.ErrBlockNotFound):
		h.logger.Warn("%s - Block not found: block_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, adminblocks.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Failed: block_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
