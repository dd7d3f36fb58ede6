package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/WorkSlot-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/WorkSlot-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgProviderNotFound   = "провайдер не найден"
	msgConfigInvalid      = "расписание провайдера настроено некорректно"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /public/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /public/bookings - Invalid input: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /public/bookings - Slot not available: provider_id=%d, start=%s, end=%s",
				req.ProviderID, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /public/bookings - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrConfigInvalid):
			h.logger.Error("POST /public/bookings - Provider config invalid: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgConfigInvalid)

		default:
			h.logger.Error("POST /public/bookings - Failed to create booking: provider_id=%d, error=%v",
				req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/bookings - Booking created: booking_id=%s, provider_id=%d, status=%s",
		result.Booking.ID, result.Booking.ProviderID, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
