package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
	ExpireProviderHolds(ctx context.Context, providerID int64, now time.Time) (int64, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus, providerComment *string, now time.Time) error
}

// MetricsRecorder доменные счётчики
type MetricsRecorder interface {
	BookingTransitioned(status string)
	HoldsExpiredAdd(count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
