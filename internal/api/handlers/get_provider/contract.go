package get_provider

import (
	"context"

	"github.com/m04kA/WorkSlot-BookingService/internal/service/availability/models"
)

type ProviderService interface {
	GetPublic(ctx context.Context, slug string) (*models.PublicProviderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
