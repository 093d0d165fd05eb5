package logout

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_session"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
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

// Handle POST /api/v1/session/logout
// Тема остаётся в сессии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /session/logout - Session missing in context")
		handlers.RespondInternalError(w)
		return
	}

	updated, err := h.service.Logout(r.Context(), current.ID)
	if err != nil {
		h.logger.Error("POST /session/logout - Failed to logout: session=%s, error=%v", current.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /session/logout - Logged out: session=%s", updated.ID)
	handlers.RespondJSON(w, http.StatusOK, get_session.FromDomain(updated, time.Now()))
}
