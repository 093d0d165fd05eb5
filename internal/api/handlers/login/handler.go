package login

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCredentials = "email и пароль обязательны"
	msgInvalidCredentials = "неверный email или пароль"
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

// Handle POST /api/v1/session/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /session/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	current, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /session/login - Session missing in context")
		handlers.RespondInternalError(w)
		return
	}

	updated, err := h.service.Login(r.Context(), current.ID, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidInput):
			h.logger.Warn("POST /session/login - Missing credentials: session=%s", current.ID)
			handlers.RespondBadRequest(w, msgMissingCredentials)

		case errors.Is(err, session.ErrInvalidCredentials):
			h.logger.Warn("POST /session/login - Invalid credentials: session=%s", current.ID)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, session.ErrNetwork):
			h.logger.Warn("POST /session/login - Booking API unavailable: %v", err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("POST /session/login - Failed to login: session=%s, error=%v", current.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /session/login - Logged in: session=%s", updated.ID)
	handlers.RespondJSON(w, http.StatusOK, get_session.FromDomain(updated, time.Now()))
}
