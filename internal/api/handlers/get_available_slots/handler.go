package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/WorkSlot-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/WorkSlot-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgProviderNotFound = "провайдер не найден"
	msgConfigInvalid    = "расписание провайдера настроено некорректно"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/providers/{slug}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /public/providers/{slug}/slots - Missing date: slug=%q", slug)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(slug, dateStr)
	if err != nil {
		h.logger.Warn("GET /public/providers/{slug}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /public/providers/{slug}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, getAvailableSlots.ErrProviderNotFound):
			h.logger.Warn("GET /public/providers/{slug}/slots - Provider not found: slug=%q", slug)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getAvailableSlots.ErrConfigInvalid):
			h.logger.Error("GET /public/providers/{slug}/slots - Provider config invalid: slug=%q, error=%v", slug, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgConfigInvalid)

		default:
			h.logger.Error("GET /public/providers/{slug}/slots - Failed to get slots: slug=%q, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/providers/{slug}/slots - Slots retrieved: provider_id=%d, date=%s, slots_count=%d",
		result.ProviderID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
