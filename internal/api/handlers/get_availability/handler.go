package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yaduk2001/selling-sub001/internal/api/handlers"
	"github.com/yaduk2001/selling-sub001/internal/domain"
	getAvailability "github.com/yaduk2001/selling-sub001/internal/usecase/get_availability"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDuration = "длительность обязательна"
	msgInvalidDuration = "длительность должна быть целым числом минут"
	msgPastDate        = "дата в прошлом"
	msgDateTooFar      = "дата слишком далеко в будущем"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/products/{productId}/availability
// Query params: date (YYYY-MM-DD), duration (минуты), timezone (опционально, только для startAt/endAt)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["productId"]
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(productID, query.Get("date"), query.Get("duration"), query.Get("timezone"))
	if err != nil {
		h.logger.Warn("GET /products/{id}/availability - Invalid parameters: product_id=%s, error=%v", productID, err)
		switch {
		case errors.Is(err, errMissingDate):
			handlers.RespondBadRequest(w, msgMissingDate)
		case errors.Is(err, errInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, errMissingDuration):
			handlers.RespondBadRequest(w, msgMissingDuration)
		default:
			handlers.RespondBadRequest(w, msgInvalidDuration)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /products/{id}/availability - Past date: product_id=%s", productID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailability.ErrDateTooFarInFuture):
			h.logger.Warn("GET /products/{id}/availability - Date too far: product_id=%s", productID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /products/{id}/availability - Invalid input: product_id=%s, error=%v", productID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /products/{id}/availability - Failed to get slots: product_id=%s, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /products/{id}/availability - Slots retrieved: product_id=%s, date=%s, slots_count=%d",
		productID, useCaseReq.Date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
