package get_provider_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/WorkSlot-BookingService/internal/api/handlers"
	"github.com/m04kA/WorkSlot-BookingService/internal/api/middleware"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/bookings"
)

const (
	msgMissingProviderID = "отсутствует ID провайдера"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/provider/bookings
// Query params: status, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.GetProviderID(r.Context())
	if !ok {
		h.logger.Warn("GET /provider/bookings - Missing provider ID")
		handlers.RespondUnauthorized(w, msgMissingProviderID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(providerID, query.Get("status"), query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /provider/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetProviderBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /provider/bookings - Invalid parameters: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /provider/bookings - Failed to get bookings: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /provider/bookings - Bookings retrieved: provider_id=%d, count=%d",
		providerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
