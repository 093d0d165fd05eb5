package toggle_theme

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

// Handle POST /api/v1/session/theme
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /session/theme - Session missing in context")
		handlers.RespondInternalError(w)
		return
	}

	updated, err := h.service.ToggleTheme(r.Context(), current.ID)
	if err != nil {
		h.logger.Error("POST /session/theme - Failed to toggle theme: session=%s, error=%v", current.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /session/theme - Theme changed: session=%s, theme=%s", updated.ID, updated.Theme)
	handlers.RespondJSON(w, http.StatusOK, get_session.FromDomain(updated, time.Now()))
}
