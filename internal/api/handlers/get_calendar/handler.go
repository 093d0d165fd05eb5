package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	getCalendar "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_calendar"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingMonth     = "месяц обязателен"
	msgInvalidMonth     = "некорректный формат месяца, ожидается YYYY-MM"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/calendar
// Query params: month (required, YYYY-MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/calendar - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		h.logger.Warn("GET /services/{id}/calendar - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, monthStr)
	if err != nil {
		h.logger.Warn("GET /services/{id}/calendar - Invalid month format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/calendar - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		case errors.Is(err, getCalendar.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/calendar - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getCalendar.ErrNetwork):
			h.logger.Warn("GET /services/{id}/calendar - Booking API unavailable: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("GET /services/{id}/calendar - Failed to build calendar: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/calendar - Calendar built: service_id=%d, month=%s", serviceID, monthStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
