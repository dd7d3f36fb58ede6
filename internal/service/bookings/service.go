package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/WorkSlot-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/bookings/models"
)

// Service сервис для работы провайдера с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование провайдера по ID.
// Чужое бронирование выглядит как несуществующее.
func (s *Service) GetByID(ctx context.Context, providerID int64, id uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for provider=%d", id, providerID)

	booking, err := s.getOwned(ctx, "GetByID", providerID, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetProviderBookings получает бронирования провайдера, предварительно просрочив истёкшие удержания
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetProviderBookings: fetching bookings for provider=%d, status=%v", req.ProviderID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	expired, err := s.bookingRepo.ExpireProviderHolds(ctx, req.ProviderID, now)
	if err != nil {
		// Список всё равно можно отдать, просрочку доделает фоновый проход
		s.logger.Warn("GetProviderBookings: failed to expire holds of provider=%d: %v", req.ProviderID, err)
	} else if expired > 0 {
		s.metrics.HoldsExpiredAdd(int(expired))
		s.logger.Info("GetProviderBookings: expired %d stale holds of provider=%d", expired, req.ProviderID)
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: fetched %d bookings for provider=%d", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings), nil
}

// SetStatus подтверждение или отклонение бронирования провайдером.
//
// Разрешены только переходы pending|awaiting_payment -> confirmed|declined.
// Если удержание уже истекло, бронирование переводится в expired и возвращается ErrInvalidTransition.
// Обновление условное по прежнему статусу, из двух параллельных решений проходит одно.
func (s *Service) SetStatus(ctx context.Context, providerID int64, id uuid.UUID, req *models.SetStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("SetStatus: booking id=%s to status=%s by provider=%d", id, req.Status, providerID)

	to, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("SetStatus: invalid status=%q for booking id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, err := s.getOwned(ctx, "SetStatus", providerID, id)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	from := booking.Status

	// Удержание истекло: фиксируем expired, решение уже не принимается
	if booking.Expire(now) {
		if err := s.bookingRepo.TransitionStatus(ctx, id, from, domain.StatusExpired, nil, now); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				// Статус уже сменил другой участник, чей переход неизвестен
				s.logger.Warn("SetStatus: booking id=%s changed concurrently", id)
				return nil, fmt.Errorf("%w: booking %s is no longer %s", ErrInvalidTransition, id, from)
			}
			s.logger.Error("SetStatus: failed to expire booking id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: SetStatus - expire booking: %v", ErrInternal, err)
		}
		s.metrics.HoldsExpiredAdd(1)
		s.logger.Warn("SetStatus: hold of booking id=%s expired at %s", id, booking.HoldExpiresAt)
		return nil, fmt.Errorf("%w: booking %s hold expired", ErrInvalidTransition, id)
	}

	if err := booking.Decide(to, req.ProviderComment, now); err != nil {
		s.logger.Warn("SetStatus: booking id=%s: %v", id, err)
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.bookingRepo.TransitionStatus(ctx, id, from, booking.Status, booking.ProviderComment, now)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("SetStatus: booking id=%s changed concurrently", id)
			return nil, fmt.Errorf("%w: booking %s is no longer %s", ErrInvalidTransition, id, from)
		}
		s.logger.Error("SetStatus: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	s.metrics.BookingTransitioned(string(booking.Status))
	s.logger.Info("SetStatus: booking id=%s moved %s -> %s", id, from, booking.Status)

	return models.FromDomainBooking(booking), nil
}

// getOwned загружает бронирование и проверяет, что оно принадлежит провайдеру
func (s *Service) getOwned(ctx context.Context, op string, providerID int64, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.ProviderID != providerID {
		s.logger.Warn("%s: booking id=%s belongs to provider=%d, requested by provider=%d",
			op, id, booking.ProviderID, providerID)
		return nil, ErrBookingNotFound
	}

	return booking, nil
}
