package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	providerRepo "github.com/m04kA/WorkSlot-BookingService/internal/infra/storage/provider"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/availability/models"
	"github.com/m04kA/WorkSlot-BookingService/pkg/logger"
	"github.com/m04kA/WorkSlot-BookingService/pkg/ptr"
)

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) GetBySlug(ctx context.Context, slug string) (*domain.Provider, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) UpdateSettings(ctx context.Context, id int64, availability *domain.AvailabilityConfig, rules *domain.BookingRules, now time.Time) error {
	args := m.Called(ctx, id, availability, rules, now)
	return args.Error(0)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newService(repo *MockProviderRepository) *Service {
	svc := NewService(repo, logger.NewNop())
	svc.timeProvider = fixedTime{now}
	return svc
}

func legacyProvider() *domain.Provider {
	return &domain.Provider{
		ID:           1,
		Slug:         "studio",
		BusinessName: "Студия",
		Country:      ptr.Ptr("RU"),
		Availability: domain.AvailabilityConfig{
			WorkingDays: []domain.Weekday{domain.Monday, domain.Wednesday},
		},
		Rules: domain.BookingRules{
			RequirePayment: true,
			PaymentLink:    "https://pay.example.com/studio",
		},
		UpdatedAt: now.Add(-time.Hour),
	}
}

func TestGet_MigratesLegacyConfig(t *testing.T) {
	repo := new(MockProviderRepository)
	svc := newService(repo)

	repo.On("GetByID", mock.Anything, int64(1)).Return(legacyProvider(), nil)

	resp, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDuration)
	assert.Equal(t, domain.DefaultHoldDurationMinutes, resp.HoldDuration)
	require.Len(t, resp.Schedule, 2)
	assert.Equal(t, []domain.ScheduleEntry{{
		Kind:  domain.EntryWindow,
		Start: domain.DefaultLegacyStartTime,
		End:   domain.DefaultLegacyEndTime,
	}}, resp.Schedule[domain.Monday])
}

func TestGet_NotFound(t *testing.T) {
	repo := new(MockProviderRepository)
	svc := newService(repo)

	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, providerRepo.ErrProviderNotFound)

	_, err := svc.Get(context.Background(), 9)

	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestGetPublic(t *testing.T) {
	repo := new(MockProviderRepository)
	svc := newService(repo)

	repo.On("GetBySlug", mock.Anything, "studio").Return(legacyProvider(), nil)

	resp, err := svc.GetPublic(context.Background(), "studio")

	require.NoError(t, err)
	assert.Equal(t, "Студия", resp.BusinessName)
	assert.True(t, resp.RequirePayment)
	assert.Equal(t, "https://pay.example.com/studio", resp.PaymentLink)
}

func TestGetPublic_EmptySlug(t *testing.T) {
	svc := newService(new(MockProviderRepository))

	_, err := svc.GetPublic(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_Availability(t *testing.T) {
	repo := new(MockProviderRepository)
	svc := newService(repo)

	cfg := &domain.AvailabilityConfig{
		DaySchedules: map[domain.Weekday][]domain.ScheduleEntry{
			domain.Monday: {{Kind: domain.EntryWindow, Start: "10:00", End: "12:00"}},
		},
		SlotDuration: ptr.Ptr(60),
	}
	updated := legacyProvider()
	updated.Availability = *cfg
	updated.UpdatedAt = now

	repo.On("UpdateSettings", mock.Anything, int64(1), cfg, (*domain.BookingRules)(nil), now).Return(nil)
	repo.On("GetByID", mock.Anything, int64(1)).Return(updated, nil)

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{ProviderID: 1, Availability: cfg})

	require.NoError(t, err)
	assert.Equal(t, 60, resp.SlotDuration)
	assert.Equal(t, now, resp.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestUpdate_InvalidConfigIsRejected(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{
			name: "окно заканчивается раньше начала",
			req: &models.UpdateSettingsRequest{ProviderID: 1, Availability: &domain.AvailabilityConfig{
				DaySchedules: map[domain.Weekday][]domain.ScheduleEntry{
					domain.Friday: {{Kind: domain.EntryWindow, Start: "18:00", End: "09:00"}},
				},
			}},
		},
		{
			name: "отрицательная длительность слота",
			req: &models.UpdateSettingsRequest{ProviderID: 1, Availability: &domain.AvailabilityConfig{
				WorkingDays:  []domain.Weekday{domain.Monday},
				SlotDuration: ptr.Ptr(-15),
			}},
		},
		{
			name: "оплата без ссылки",
			req: &models.UpdateSettingsRequest{ProviderID: 1, Rules: &domain.BookingRules{
				RequirePayment: true,
			}},
		},
		{
			name: "ссылка на оплату не http",
			req: &models.UpdateSettingsRequest{ProviderID: 1, Rules: &domain.BookingRules{
				RequirePayment: true,
				PaymentLink:    "ftp://pay.example.com",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProviderRepository)
			svc := newService(repo)

			_, err := svc.Update(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrConfigInvalid)
			assert.ErrorIs(t, err, domain.ErrConfigInvalid)
			repo.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	svc := newService(new(MockProviderRepository))

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{ProviderID: 1})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_RepositoryErrors(t *testing.T) {
	rules := &domain.BookingRules{HoldDuration: 15}

	repo := new(MockProviderRepository)
	svc := newService(repo)
	repo.On("UpdateSettings", mock.Anything, int64(2), (*domain.AvailabilityConfig)(nil), rules, now).
		Return(providerRepo.ErrProviderNotFound)
	repo.On("UpdateSettings", mock.Anything, int64(3), (*domain.AvailabilityConfig)(nil), rules, now).
		Return(errors.New("connection refused"))

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{ProviderID: 2, Rules: rules})
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = svc.Update(context.Background(), &models.UpdateSettingsRequest{ProviderID: 3, Rules: rules})
	assert.ErrorIs(t, err, ErrInternal)
}
