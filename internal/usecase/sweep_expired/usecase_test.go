package sweep_expired

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/WorkSlot-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/WorkSlot-BookingService/pkg/logger"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListExpiredHolds(ctx context.Context, now time.Time, limit uint64) ([]*domain.Booking, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus, providerComment *string, now time.Time) error {
	args := m.Called(ctx, id, from, to, providerComment, now)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) HoldsExpiredAdd(count int) {
	m.Called(count)
}

var createdAt = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

func pendingBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            uuid.New(),
		ProviderID:    1,
		Status:        status,
		CreatedAt:     createdAt,
		HoldExpiresAt: createdAt.Add(30 * time.Minute),
	}
}

func TestExecute_ExpiresLapsedHolds(t *testing.T) {
	repo := new(MockBookingRepository)
	metrics := new(MockMetrics)
	now := createdAt.Add(31 * time.Minute)

	pending := pendingBooking(domain.StatusPending)
	awaiting := pendingBooking(domain.StatusAwaitingPayment)

	repo.On("ListExpiredHolds", mock.Anything, now, uint64(100)).
		Return([]*domain.Booking{pending, awaiting}, nil)
	repo.On("TransitionStatus", mock.Anything, pending.ID, domain.StatusPending, domain.StatusExpired, (*string)(nil), now).Return(nil)
	repo.On("TransitionStatus", mock.Anything, awaiting.ID, domain.StatusAwaitingPayment, domain.StatusExpired, (*string)(nil), now).Return(nil)
	metrics.On("HoldsExpiredAdd", 2).Return()

	uc := NewUseCase(repo, metrics, 100, logger.NewNop())

	count, err := uc.Execute(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	repo.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestExecute_SkipsNotYetExpiredAndTerminal(t *testing.T) {
	repo := new(MockBookingRepository)
	metrics := new(MockMetrics)
	now := createdAt.Add(29 * time.Minute)

	repo.On("ListExpiredHolds", mock.Anything, now, uint64(DefaultBatchSize)).
		Return([]*domain.Booking{pendingBooking(domain.StatusPending), pendingBooking(domain.StatusConfirmed)}, nil)

	uc := NewUseCase(repo, metrics, 0, logger.NewNop())

	count, err := uc.Execute(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	repo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	metrics.AssertNotCalled(t, "HoldsExpiredAdd", mock.Anything)
}

func TestExecute_ContinuesAfterFailures(t *testing.T) {
	repo := new(MockBookingRepository)
	metrics := new(MockMetrics)
	now := createdAt.Add(time.Hour)

	conflict := pendingBooking(domain.StatusPending)
	broken := pendingBooking(domain.StatusPending)
	ok := pendingBooking(domain.StatusPending)

	repo.On("ListExpiredHolds", mock.Anything, now, mock.Anything).
		Return([]*domain.Booking{conflict, broken, ok}, nil)
	repo.On("TransitionStatus", mock.Anything, conflict.ID, mock.Anything, mock.Anything, mock.Anything, now).
		Return(bookingRepo.ErrStatusConflict)
	repo.On("TransitionStatus", mock.Anything, broken.ID, mock.Anything, mock.Anything, mock.Anything, now).
		Return(errors.New("connection reset"))
	repo.On("TransitionStatus", mock.Anything, ok.ID, mock.Anything, mock.Anything, mock.Anything, now).
		Return(nil)
	metrics.On("HoldsExpiredAdd", 1).Return()

	uc := NewUseCase(repo, metrics, 10, logger.NewNop())

	count, err := uc.Execute(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertNumberOfCalls(t, "TransitionStatus", 3)
}

func TestExecute_ListFailure(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("ListExpiredHolds", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	uc := NewUseCase(repo, new(MockMetrics), 10, logger.NewNop())

	_, err := uc.Execute(context.Background(), createdAt)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestExecute_DrainsFullBatches(t *testing.T) {
	repo := new(MockBookingRepository)
	metrics := new(MockMetrics)
	now := createdAt.Add(time.Hour)

	first := []*domain.Booking{pendingBooking(domain.StatusPending), pendingBooking(domain.StatusPending)}
	second := []*domain.Booking{pendingBooking(domain.StatusAwaitingPayment)}

	repo.On("ListExpiredHolds", mock.Anything, now, uint64(2)).Return(first, nil).Once()
	repo.On("ListExpiredHolds", mock.Anything, now, uint64(2)).Return(second, nil).Once()
	repo.On("TransitionStatus", mock.Anything, mock.Anything, mock.Anything, domain.StatusExpired, (*string)(nil), now).Return(nil)
	metrics.On("HoldsExpiredAdd", 3).Return()

	uc := NewUseCase(repo, metrics, 2, logger.NewNop())

	count, err := uc.Execute(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	repo.AssertNumberOfCalls(t, "ListExpiredHolds", 2)
	repo.AssertNumberOfCalls(t, "TransitionStatus", 3)
	metrics.AssertExpectations(t)
}

func TestExecute_StopsOnFullBatchWithoutProgress(t *testing.T) {
	repo := new(MockBookingRepository)
	metrics := new(MockMetrics)
	now := createdAt.Add(time.Hour)

	stuck := []*domain.Booking{pendingBooking(domain.StatusPending), pendingBooking(domain.StatusPending)}

	repo.On("ListExpiredHolds", mock.Anything, now, uint64(2)).Return(stuck, nil)
	repo.On("TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, now).
		Return(errors.New("connection reset"))

	uc := NewUseCase(repo, metrics, 2, logger.NewNop())

	count, err := uc.Execute(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	repo.AssertNumberOfCalls(t, "ListExpiredHolds", 1)
	metrics.AssertNotCalled(t, "HoldsExpiredAdd", mock.Anything)
}

func TestExecute_StopsWhenContextCancelled(t *testing.T) {
	repo := new(MockBookingRepository)
	metrics := new(MockMetrics)
	now := createdAt.Add(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	first := pendingBooking(domain.StatusPending)
	batch := []*domain.Booking{first, pendingBooking(domain.StatusPending)}

	repo.On("ListExpiredHolds", mock.Anything, now, uint64(2)).Return(batch, nil)
	repo.On("TransitionStatus", mock.Anything, first.ID, mock.Anything, mock.Anything, mock.Anything, now).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil)
	metrics.On("HoldsExpiredAdd", 1).Return()

	uc := NewUseCase(repo, metrics, 2, logger.NewNop())

	count, err := uc.Execute(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	repo.AssertNumberOfCalls(t, "ListExpiredHolds", 1)
	repo.AssertNumberOfCalls(t, "TransitionStatus", 1)
	metrics.AssertExpectations(t)
}
