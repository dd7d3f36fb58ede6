package update_provider_config

import (
	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/availability/models"
)

// UpdateConfigRequest HTTP request model.
// Разделы опциональны, обновляются только переданные.
type UpdateConfigRequest struct {
	Availability *domain.AvailabilityConfig `json:"availability,omitempty"`
	Rules        *domain.BookingRules       `json:"rules,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest(providerID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		ProviderID:   providerID,
		Availability: r.Availability,
		Rules:        r.Rules,
	}
}
