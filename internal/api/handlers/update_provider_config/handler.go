package update_provider_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/WorkSlot-BookingService/internal/api/handlers"
	"github.com/m04kA/WorkSlot-BookingService/internal/api/middleware"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/availability"
)

const (
	msgMissingProviderID  = "отсутствует ID провайдера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные конфигурации"
	msgProviderNotFound   = "провайдер не найден"
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

// Handle PUT /api/v1/provider/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.GetProviderID(r.Context())
	if !ok {
		h.logger.Warn("PUT /provider/config - Missing provider ID")
		handlers.RespondUnauthorized(w, msgMissingProviderID)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /provider/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(providerID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrConfigInvalid), errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /provider/config - Invalid data: provider_id=%d, error=%v", providerID, err)
			handlers.RespondError(w, http.StatusBadRequest, msgInvalidData+": "+err.Error())

		case errors.Is(err, availability.ErrProviderNotFound):
			h.logger.Warn("PUT /provider/config - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("PUT /provider/config - Failed to update config: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /provider/config - Config updated: provider_id=%d", providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
