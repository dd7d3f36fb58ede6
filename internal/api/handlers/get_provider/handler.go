package get_provider

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/WorkSlot-BookingService/internal/api/handlers"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/availability"
)

const (
	msgInvalidSlug      = "некорректный адрес страницы провайдера"
	msgProviderNotFound = "провайдер не найден"
)

type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/providers/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	result, err := h.service.GetPublic(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /public/providers/{slug} - Invalid slug: %q", slug)
			handlers.RespondBadRequest(w, msgInvalidSlug)

		case errors.Is(err, availability.ErrProviderNotFound):
			h.logger.Warn("GET /public/providers/{slug} - Provider not found: slug=%q", slug)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /public/providers/{slug} - Failed to get provider: slug=%q, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/providers/{slug} - Provider retrieved: slug=%q, provider_id=%d", slug, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
