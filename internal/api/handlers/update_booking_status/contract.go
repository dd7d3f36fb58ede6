package update_booking_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/WorkSlot-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	SetStatus(ctx context.Context, providerID int64, id uuid.UUID, req *models.SetStatusRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
