package update_business_hours

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/yaduk2001/selling-sub001/internal/api/handlers"
	"github.com/yaduk2001/selling-sub001/internal/service/businesshours"
	"github.com/yaduk2001/selling-sub001/internal/service/businesshours/models"
)

const (
	msgInvalidWeekday     = "некорректный день недели, ожидается 0 (воскресенье) - 6 (суббота)"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные расписания"
)

type Handler struct {
	service BusinessHoursService
	logger  Logger
}

func NewHandler(service BusinessHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/business-hours/{weekday}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	weekday, err := parseWeekday(mux.Vars(r)["weekday"])
	if err != nil {
		h.logger.Warn("PUT /admin/business-hours/{weekday} - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	var req models.UpdateHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/business-hours/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), weekday, &req)
	if err != nil {
		switch {
		case errors.Is(err, businesshours.ErrInvalidInput):
			h.logger.Warn("PUT /admin/business-hours/{weekday} - Invalid data: weekday=%d, error=%v", weekday, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /admin/business-hours/{weekday} - Failed to update: weekday=%d, error=%v", weekday, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/business-hours/{weekday} - Business hours updated: weekday=%d, working=%t",
		weekday, result.IsWorkingDay)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseWeekday(s string) (time.Weekday, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < int(time.Sunday) || n > int(time.Saturday) {
		return 0, strconv.ErrRange
	}
	return time.Weekday(n), nil
}
