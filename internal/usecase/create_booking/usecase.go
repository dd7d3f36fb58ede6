package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/WorkSlot-BookingService/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/WorkSlot-BookingService/internal/infra/storage/provider"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/slots"
	"github.com/m04kA/WorkSlot-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	txManager    TransactionManager
	metrics      MetricsRecorder
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		txManager:    txManager,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Внутри одной сериализуемой транзакции под advisory-блокировкой провайдера:
// просроченные удержания переводятся в expired, слоты генерируются заново
// и запрошенный интервал должен точно совпасть с одним из свободных слотов.
// Повторную вставку того же слота отсекает уникальный индекс по занимающим бронированиям.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: provider=%d, start=%s, end=%s",
		req.ProviderID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		result *domain.Booking
		rules  domain.BookingRules
	)

	// 3. Проверка и вставка атомарно
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Провайдер
		provider, err := uc.providerRepo.GetByID(txCtx, req.ProviderID)
		if err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				uc.logger.Warn("CreateBooking: provider id=%d not found", req.ProviderID)
				return ErrProviderNotFound
			}
			return fmt.Errorf("%w: failed to get provider: %v", ErrStorage, err)
		}
		rules = provider.Rules

		// 3.2. Блокируем расписание провайдера до конца транзакции
		if err := uc.bookingRepo.LockProvider(txCtx, provider.ID); err != nil {
			return storageError("failed to lock provider", err)
		}

		// 3.3. Просроченные удержания освобождают слоты
		expired, err := uc.bookingRepo.ExpireProviderHolds(txCtx, provider.ID, now)
		if err != nil {
			return storageError("failed to expire holds", err)
		}
		if expired > 0 {
			uc.logger.Info("CreateBooking: expired %d stale holds of provider=%d", expired, provider.ID)
			uc.metrics.HoldsExpiredAdd(int(expired))
		}

		// 3.4. Расписание
		schedule, err := domain.ResolveSchedule(provider.Availability)
		if err != nil {
			uc.logger.Error("CreateBooking: provider id=%d has invalid availability config: %v", provider.ID, err)
			return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
		}

		// 3.5. Занимающие бронирования дня слота, включая хвост после полуночи
		day := dayStart(req.StartTime.In(uc.location))
		from, to := slots.OccupancyRange(day)
		bookings, err := uc.bookingRepo.GetOccupying(txCtx, provider.ID, from, to)
		if err != nil {
			return storageError("failed to get bookings", err)
		}

		// 3.6. Запрошенный интервал должен быть среди свободных слотов
		free, err := slots.Generate(schedule, provider.Availability.SlotDurationMinutes(), day, bookings, now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
		}
		if !slots.Contains(free, req.StartTime, req.EndTime) {
			uc.logger.Warn("CreateBooking: slot %s-%s of provider=%d is not available",
				req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339), provider.ID)
			return ErrSlotUnavailable
		}

		// 3.7. Создаём бронирование в начальном статусе
		booking, err := domain.NewBooking(uuid.New(), provider.ID, req.Customer, req.StartTime, req.EndTime, provider.Rules, now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) || errors.Is(err, bookingRepo.ErrSerialization) {
				uc.logger.Warn("CreateBooking: slot of provider=%d taken concurrently: %v", provider.ID, err)
				return ErrSlotUnavailable
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrStorage, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		err = uc.mapTxError(err)
		if errors.Is(err, ErrStorage) || errors.Is(err, ErrConfigInvalid) {
			uc.logger.Error("CreateBooking: %v", err)
		}
		return nil, err
	}

	uc.metrics.BookingCreated(string(result.Status))
	uc.logger.Info("CreateBooking: created booking id=%s provider=%d status=%s",
		result.ID, result.ProviderID, result.Status)

	return &Response{
		Booking:        result,
		RequirePayment: rules.RequirePayment,
		PaymentLink:    rules.PaymentLink,
	}, nil
}

// mapTxError приводит ошибки транзакции к ошибкам use case
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrProviderNotFound),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrConfigInvalid),
		errors.Is(err, ErrStorage):
		return err
	case errors.Is(err, txmanager.ErrSerialization):
		// Параллельная транзакция заняла слот раньше
		return ErrSlotUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}

// storageError ошибка репозитория внутри транзакции.
// Конфликт сериализации означает, что параллельный запрос успел изменить расписание провайдера.
func storageError(msg string, err error) error {
	if errors.Is(err, bookingRepo.ErrSerialization) {
		return ErrSlotUnavailable
	}
	return fmt.Errorf("%w: %s: %v", ErrStorage, msg, err)
}

// dayStart полночь того же календарного дня в часовом поясе t
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
