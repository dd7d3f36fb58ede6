package get_provider_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/WorkSlot-BookingService/internal/api/handlers"
	"github.com/m04kA/WorkSlot-BookingService/internal/api/middleware"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/availability"
)

const (
	msgMissingProviderID = "отсутствует ID провайдера"
	msgProviderNotFound  = "провайдер не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/provider/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.GetProviderID(r.Context())
	if !ok {
		h.logger.Warn("GET /provider/config - Missing provider ID")
		handlers.RespondUnauthorized(w, msgMissingProviderID)
		return
	}

	result, err := h.service.Get(r.Context(), providerID)
	if err != nil {
		if errors.Is(err, availability.ErrProviderNotFound) {
			h.logger.Warn("GET /provider/config - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)
			return
		}

		h.logger.Error("GET /provider/config - Failed to get config: provider_id=%d, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /provider/config - Config retrieved: provider_id=%d", providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
