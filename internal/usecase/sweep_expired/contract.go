package sweep_expired

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListExpiredHolds(ctx context.Context, now time.Time, limit uint64) ([]*domain.Booking, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus, providerComment *string, now time.Time) error
}

// MetricsRecorder доменные счётчики
type MetricsRecorder interface {
	HoldsExpiredAdd(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
