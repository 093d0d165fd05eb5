package update_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_profile"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/profile"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите новое имя, email или пароль"
	msgRejected           = "изменение отклонено, возможно email уже занят"
	msgUnauthenticated    = "сессия истекла, войдите снова"
)

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

// Handle PATCH /api/v1/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /profile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), current.Token, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrInvalidInput):
			h.logger.Warn("PATCH /profile - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, profile.ErrRejected):
			h.logger.Warn("PATCH /profile - Rejected: %v", err)
			handlers.RespondConflict(w, msgRejected)

		case errors.Is(err, profile.ErrUnauthenticated):
			h.logger.Warn("PATCH /profile - Token rejected: session=%s", current.ID)
			if _, logoutErr := h.sessions.Logout(r.Context(), current.ID); logoutErr != nil {
				h.logger.Error("PATCH /profile - Failed to reset session=%s: %v", current.ID, logoutErr)
			}
			handlers.RespondUnauthorized(w, msgUnauthenticated)

		case errors.Is(err, profile.ErrNetwork):
			h.logger.Warn("PATCH /profile - Booking API unavailable: %v", err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("PATCH /profile - Failed to update profile: session=%s, error=%v", current.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /profile - Profile updated: user_id=%d", user.ID)
	handlers.RespondJSON(w, http.StatusOK, get_profile.UserFromDomain(user))
}
