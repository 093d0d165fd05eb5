package get_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/profile"
)

const msgUnauthenticated = "сессия истекла, войдите снова"

type Handler struct {
	service  ProfileService
	sessions SessionService
	logger   Logger
}

func NewHandler(service ProfileService, sessions SessionService, logger Logger) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		logger:   logger,
	}
}

// Handle GET /api/v1/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	result, err := h.service.GetProfile(r.Context(), current.Token)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrUnauthenticated):
			h.logger.Warn("GET /profile - Token rejected: session=%s", current.ID)
			if _, logoutErr := h.sessions.Logout(r.Context(), current.ID); logoutErr != nil {
				h.logger.Error("GET /profile - Failed to reset session=%s: %v", current.ID, logoutErr)
			}
			handlers.RespondUnauthorized(w, msgUnauthenticated)

		case errors.Is(err, profile.ErrNetwork):
			h.logger.Warn("GET /profile - Booking API unavailable: %v", err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("GET /profile - Failed to get profile: session=%s, error=%v", current.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /profile - Profile retrieved: user_id=%d, appointments=%d", result.User.ID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, FromProfile(result))
}
