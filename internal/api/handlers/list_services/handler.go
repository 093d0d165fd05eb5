package list_services

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

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNetwork):
			h.logger.Warn("GET /services - Booking API unavailable: %v", err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("GET /services - Failed to list services: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		response = append(response, FromDomain(s))
	}

	h.logger.Info("GET /services - Services retrieved successfully: count=%d", len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}
