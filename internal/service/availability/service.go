package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	providerRepo "github.com/m04kA/WorkSlot-BookingService/internal/infra/storage/provider"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/availability/models"
)

// Service сервис настроек расписания и правил бронирования провайдера
type Service struct {
	providerRepo ProviderRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(providerRepo ProviderRepository, logger Logger) *Service {
	return &Service{
		providerRepo: providerRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get возвращает текущие настройки провайдера
func (s *Service) Get(ctx context.Context, providerID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for provider=%d", providerID)

	provider, err := s.getProvider(ctx, "Get", providerID)
	if err != nil {
		return nil, err
	}

	schedule, err := domain.ResolveSchedule(provider.Availability)
	if err != nil {
		// Отдаём как есть, чтобы провайдер мог исправить конфигурацию
		s.logger.Warn("Get: stored availability of provider=%d is invalid: %v", providerID, err)
		schedule = nil
	}

	return models.FromDomainProvider(provider, schedule), nil
}

// GetPublic возвращает публичный профиль провайдера по slug
func (s *Service) GetPublic(ctx context.Context, slug string) (*models.PublicProviderResponse, error) {
	s.logger.Info("GetPublic: fetching provider slug=%q", slug)

	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	provider, err := s.providerRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("GetPublic: provider slug=%q not found", slug)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("GetPublic: repository error for slug=%q: %v", slug, err)
		return nil, fmt.Errorf("%w: GetPublic - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPublicProvider(provider), nil
}

// Update сохраняет новую конфигурацию расписания и/или правила бронирования.
// Конфигурация проверяется целиком до записи, включая миграцию старого формата.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for provider=%d (availability=%t, rules=%t)",
		req.ProviderID, req.Availability != nil, req.Rules != nil)

	if req.Availability == nil && req.Rules == nil {
		s.logger.Warn("Update: nothing to update for provider=%d", req.ProviderID)
		return nil, fmt.Errorf("%w: availability or rules must be provided", ErrInvalidInput)
	}

	if req.Availability != nil {
		if err := req.Availability.Validate(); err != nil {
			s.logger.Warn("Update: invalid availability for provider=%d: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
		}
	}

	if req.Rules != nil {
		if err := req.Rules.Validate(); err != nil {
			s.logger.Warn("Update: invalid rules for provider=%d: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
		}
	}

	now := s.timeProvider.Now()
	if err := s.providerRepo.UpdateSettings(ctx, req.ProviderID, req.Availability, req.Rules, now); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("Update: provider=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("Update: failed to save settings for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings of provider=%d saved", req.ProviderID)

	return s.Get(ctx, req.ProviderID)
}

func (s *Service) getProvider(ctx context.Context, op string, providerID int64) (*domain.Provider, error) {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("%s: provider=%d not found", op, providerID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("%s: repository error for provider=%d: %v", op, providerID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return provider, nil
}
