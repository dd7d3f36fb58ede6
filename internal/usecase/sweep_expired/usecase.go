package sweep_expired

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/WorkSlot-BookingService/internal/infra/storage/booking"
)

// DefaultBatchSize сколько бронирований обрабатывается за один проход
const DefaultBatchSize = 500

// UseCase перевод просроченных удержаний в expired
type UseCase struct {
	bookingRepo BookingRepository
	metrics     MetricsRecorder
	batchSize   uint64
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, metrics MetricsRecorder, batchSize int, logger Logger) *UseCase {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		metrics:     metrics,
		batchSize:   uint64(batchSize),
		logger:      logger,
	}
}

// Execute переводит в expired бронирования, чьё удержание истекло к now, и возвращает их количество.
// Кандидаты выбираются пачками по batchSize, пока пачка заполнена целиком.
// Каждое бронирование меняется условно по прежнему статусу, поэтому параллельные
// и повторные вызовы безопасны. Бронирование, которое не удалось перевести, пропускается.
func (uc *UseCase) Execute(ctx context.Context, now time.Time) (int, error) {
	expired := 0
	defer func() {
		if expired > 0 {
			uc.metrics.HoldsExpiredAdd(expired)
			uc.logger.Info("SweepExpired: expired %d bookings", expired)
		}
	}()

	for {
		candidates, err := uc.bookingRepo.ListExpiredHolds(ctx, now, uc.batchSize)
		if err != nil {
			uc.logger.Error("SweepExpired: failed to list expired holds: %v", err)
			return expired, fmt.Errorf("%w: %v", ErrStorage, err)
		}

		progressed, interrupted := uc.expireBatch(ctx, candidates, now)
		expired += progressed

		if interrupted || uint64(len(candidates)) < uc.batchSize {
			return expired, nil
		}
		// Пачка не сдвинулась: следующий запрос вернул бы те же строки
		if progressed == 0 {
			uc.logger.Warn("SweepExpired: no progress on a full batch of %d, stopping", len(candidates))
			return expired, nil
		}
	}
}

// expireBatch переводит одну пачку кандидатов, interrupted сообщает об отмене ctx.
func (uc *UseCase) expireBatch(ctx context.Context, candidates []*domain.Booking, now time.Time) (expired int, interrupted bool) {
	for _, b := range candidates {
		if ctx.Err() != nil {
			uc.logger.Warn("SweepExpired: interrupted after %d of %d bookings: %v", expired, len(candidates), ctx.Err())
			return expired, true
		}

		from := b.Status
		if !b.Expire(now) {
			continue
		}

		err := uc.bookingRepo.TransitionStatus(ctx, b.ID, from, b.Status, nil, now)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				// Провайдер успел принять решение или другой проход уже просрочил бронирование
				uc.logger.Info("SweepExpired: booking id=%s changed concurrently, skipped", b.ID)
				continue
			}
			uc.logger.Error("SweepExpired: failed to expire booking id=%s: %v", b.ID, err)
			continue
		}
		expired++
	}
	return expired, false
}
