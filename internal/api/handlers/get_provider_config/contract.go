package get_provider_config

import (
	"context"

	"github.com/m04kA/WorkSlot-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	Get(ctx context.Context, providerID int64) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
