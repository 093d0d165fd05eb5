package register

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_session"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/session"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingFields        = "имя, email и пароль обязательны"
	msgRegistrationRejected = "регистрация отклонена, возможно email уже занят"
	msgInvalidCredentials   = "не удалось войти после регистрации"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/session/register
// После регистрации сессия сразу авторизована
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /session/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	current, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /session/register - Session missing in context")
		handlers.RespondInternalError(w)
		return
	}

	updated, err := h.service.Register(r.Context(), current.ID, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidInput):
			h.logger.Warn("POST /session/register - Missing fields: session=%s", current.ID)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, session.ErrRegistrationRejected):
			h.logger.Warn("POST /session/register - Rejected: session=%s, error=%v", current.ID, err)
			handlers.RespondConflict(w, msgRegistrationRejected)

		case errors.Is(err, session.ErrInvalidCredentials):
			h.logger.Warn("POST /session/register - Login after registration failed: session=%s", current.ID)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, session.ErrNetwork):
			h.logger.Warn("POST /session/register - Booking API unavailable: %v", err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("POST /session/register - Failed to register: session=%s, error=%v", current.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /session/register - Registered and logged in: session=%s", updated.ID)
	handlers.RespondJSON(w, http.StatusCreated, get_session.FromDomain(updated, time.Now()))
}
