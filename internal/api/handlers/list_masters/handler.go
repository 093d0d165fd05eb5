package list_masters

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters
// Email мастера наружу не отдаётся
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masters, err := h.service.ListMasters(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNetwork):
			h.logger.Warn("GET /masters - Booking API unavailable: %v", err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("GET /masters - Failed to list masters: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := make([]MasterResponse, 0, len(masters))
	for _, m := range masters {
		response = append(response, MasterResponse{ID: m.ID, Username: m.Username})
	}

	h.logger.Info("GET /masters - Masters retrieved successfully: count=%d", len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}
