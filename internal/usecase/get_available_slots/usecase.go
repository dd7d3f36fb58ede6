package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	providerRepo "github.com/m04kA/WorkSlot-BookingService/internal/infra/storage/provider"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/slots"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс, в котором интерпретируются расписания.
func NewUseCase(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Слоты каждый раз вычисляются заново по текущему состоянию бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, slug=%q, date=%s",
		req.ProviderID, req.Slug, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем провайдера
	provider, err := uc.getProvider(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Приводим конфигурацию к расписанию по дням (с миграцией старого формата)
	schedule, err := domain.ResolveSchedule(provider.Availability)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: provider id=%d has invalid availability config: %v", provider.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	slotDuration := provider.Availability.SlotDurationMinutes()

	// 4. Бронирования провайдера, которые могут пересечься со слотами дня
	day := dayStart(req.Date, uc.location)
	from, to := slots.OccupancyRange(day)
	bookings, err := uc.bookingRepo.GetOccupying(ctx, provider.ID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for provider id=%d: %v", provider.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrStorage, err)
	}

	// 5. Генерируем слоты
	free, err := slots.Generate(schedule, slotDuration, day, bookings, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for provider id=%d: %v", provider.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for provider=%d, date=%s",
		len(free), provider.ID, day.Format(domain.DateFormat))

	return &Response{
		ProviderID:     provider.ID,
		Date:           day,
		SlotDuration:   slotDuration,
		RequirePayment: provider.Rules.RequirePayment,
		PaymentLink:    provider.Rules.PaymentLink,
		Slots:          free,
	}, nil
}

func (uc *UseCase) getProvider(ctx context.Context, req *Request) (*domain.Provider, error) {
	var (
		provider *domain.Provider
		err      error
	)
	if req.ProviderID > 0 {
		provider, err = uc.providerRepo.GetByID(ctx, req.ProviderID)
	} else {
		provider, err = uc.providerRepo.GetBySlug(ctx, req.Slug)
	}

	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%d slug=%q not found", req.ProviderID, req.Slug)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider: %v", err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrStorage, err)
	}

	return provider, nil
}

// dayStart полночь календарного дня date в часовом поясе loc
func dayStart(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
