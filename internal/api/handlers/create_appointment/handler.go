package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
)

// IdempotencyHeader заголовок с ключом повторной отправки формы
const IdempotencyHeader = "Idempotency-Key"

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени начала, ожидается HH:MM"
	msgUnauthenticated     = "сессия истекла, войдите снова"
	msgServiceNotFound     = "услуга не найдена"
	msgSlotNotAvailable    = "выбранное время недоступно, выберите другое"
	msgServerRejected      = "сервис записи отклонил запрос, выберите другое время"
	msgSubmissionInProcess = "запись уже отправляется, дождитесь ответа"
	msgInvalidPhone        = "телефон должен быть в формате " + domain.PhoneFormatHint
	msgMissingField        = "заполните обязательное поле"
	msgTooLong             = "слишком длинное значение"
	msgInvalidTimeStep     = "время записи должно попадать на сетку слотов"
	msgInvalidKey          = "некорректный ключ идемпотентности"
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	sessions SessionService
	logger   Logger
}

func NewHandler(useCase CreateAppointmentUseCase, sessions SessionService, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		sessions: sessions,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
// Header: Idempotency-Key (optional, UUID)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Session missing in context")
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(current.Token, r.Header.Get(IdempotencyHeader))
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, r, current.ID, req.ServiceID, err)
		return
	}

	response := FromUseCaseResponse(result)

	if result.Replayed {
		h.logger.Info("POST /appointments - Replayed: appointment_id=%d, key=%s", result.AppointmentID, result.IdempotencyKey)
		handlers.RespondJSON(w, http.StatusOK, response)
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, service_id=%d, session=%s",
		result.AppointmentID, result.ServiceID, current.ID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, sessionID string, serviceID int64, err error) {
	var validationErr *createAppointment.ValidationError
	var rejection *createAppointment.RejectionError

	switch {
	case errors.As(err, &validationErr):
		h.logger.Warn("POST /appointments - Validation failed: service_id=%d, field=%s, kind=%s",
			serviceID, validationErr.Field, validationErr.Kind)
		handlers.RespondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error: validationMessage(validationErr.Kind),
			Kind:  string(validationErr.Kind),
			Field: validationErr.Field,
		})

	case errors.Is(err, createAppointment.ErrUnauthenticated):
		h.logger.Warn("POST /appointments - Token rejected: session=%s", sessionID)
		if _, logoutErr := h.sessions.Logout(r.Context(), sessionID); logoutErr != nil {
			h.logger.Error("POST /appointments - Failed to reset session=%s: %v", sessionID, logoutErr)
		}
		handlers.RespondUnauthorized(w, msgUnauthenticated)

	case errors.As(err, &rejection):
		message := msgSlotNotAvailable
		if errors.Is(rejection, createAppointment.ErrServerRejected) {
			message = msgServerRejected
		}
		h.logger.Warn("POST /appointments - Rejected: service_id=%d, error=%v", serviceID, err)
		handlers.RespondJSON(w, http.StatusConflict, RejectionResponse{
			Error:       message,
			BookedSlots: formatInstants(rejection.BookedSlots),
		})

	case errors.Is(err, createAppointment.ErrSlotNotAvailable):
		h.logger.Warn("POST /appointments - Slot not available: service_id=%d", serviceID)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	case errors.Is(err, createAppointment.ErrServerRejected):
		h.logger.Warn("POST /appointments - Rejected by booking api: service_id=%d, error=%v", serviceID, err)
		handlers.RespondConflict(w, msgServerRejected)

	case errors.Is(err, createAppointment.ErrSubmissionInProgress):
		h.logger.Warn("POST /appointments - Submission in progress: service_id=%d", serviceID)
		handlers.RespondConflict(w, msgSubmissionInProcess)

	case errors.Is(err, createAppointment.ErrServiceNotFound):
		h.logger.Warn("POST /appointments - Service not found: service_id=%d", serviceID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createAppointment.ErrNetwork):
		h.logger.Warn("POST /appointments - Booking API unavailable: service_id=%d, error=%v", serviceID, err)
		handlers.RespondBadGateway(w)

	default:
		h.logger.Error("POST /appointments - Failed to create appointment: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
	}
}

func validationMessage(kind createAppointment.ValidationErrorKind) string {
	switch kind {
	case createAppointment.KindInvalidPhoneFormat:
		return msgInvalidPhone
	case createAppointment.KindTooLong:
		return msgTooLong
	case createAppointment.KindInvalidTimeStep:
		return msgInvalidTimeStep
	case createAppointment.KindInvalidIdempotencyKey:
		return msgInvalidKey
	default:
		return msgMissingField
	}
}
