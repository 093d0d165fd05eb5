package delete_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/profile"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgRejected             = "запись нельзя удалить"
	msgUnauthenticated      = "сессия истекла, войдите снова"
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

// Handle DELETE /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	current, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	if err := h.service.DeleteAppointment(r.Context(), current.Token, appointmentID); err != nil {
		switch {
		case errors.Is(err, profile.ErrInvalidInput):
			h.logger.Warn("DELETE /appointments/{id} - Invalid input: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		case errors.Is(err, profile.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, profile.ErrRejected):
			h.logger.Warn("DELETE /appointments/{id} - Rejected: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondConflict(w, msgRejected)

		case errors.Is(err, profile.ErrUnauthenticated):
			h.logger.Warn("DELETE /appointments/{id} - Token rejected: session=%s", current.ID)
			if _, logoutErr := h.sessions.Logout(r.Context(), current.ID); logoutErr != nil {
				h.logger.Error("DELETE /appointments/{id} - Failed to reset session=%s: %v", current.ID, logoutErr)
			}
			handlers.RespondUnauthorized(w, msgUnauthenticated)

		case errors.Is(err, profile.ErrNetwork):
			h.logger.Warn("DELETE /appointments/{id} - Booking API unavailable: %v", err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to delete appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment deleted: appointment_id=%d", appointmentID)
	handlers.RespondNoContent(w)
}
