package models

import (
	"time"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек провайдера.
// Непереданный раздел остаётся без изменений.
type UpdateSettingsRequest struct {
	ProviderID   int64                      `json:"-"`
	Availability *domain.AvailabilityConfig `json:"availability,omitempty"`
	Rules        *domain.BookingRules       `json:"rules,omitempty"`
}

// SettingsResponse настройки расписания и правил бронирования
type SettingsResponse struct {
	ProviderID   int64                     `json:"providerId"`
	SlotDuration int                       `json:"slotDuration"`
	HoldDuration int                       `json:"holdDuration"`
	Availability domain.AvailabilityConfig `json:"availability"`
	Schedule     domain.Schedule           `json:"schedule"` // расписание после миграции старого формата
	Rules        domain.BookingRules       `json:"rules"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

// PublicProviderResponse публичный профиль провайдера
type PublicProviderResponse struct {
	ID             int64   `json:"id"`
	Slug           string  `json:"slug"`
	BusinessName   string  `json:"businessName"`
	Country        *string `json:"country,omitempty"`
	RequirePayment bool    `json:"requirePayment"`
	PaymentLink    string  `json:"paymentLink,omitempty"`
}

// FromDomainProvider конвертирует провайдера в настройки.
// schedule может быть nil, если сохранённая конфигурация некорректна.
func FromDomainProvider(p *domain.Provider, schedule domain.Schedule) *SettingsResponse {
	if p == nil {
		return nil
	}

	return &SettingsResponse{
		ProviderID:   p.ID,
		SlotDuration: p.Availability.SlotDurationMinutes(),
		HoldDuration: p.Rules.HoldDurationMinutes(),
		Availability: p.Availability,
		Schedule:     schedule,
		Rules:        p.Rules,
		UpdatedAt:    p.UpdatedAt,
	}
}

// FromDomainPublicProvider конвертирует провайдера в публичный профиль
func FromDomainPublicProvider(p *domain.Provider) *PublicProviderResponse {
	if p == nil {
		return nil
	}

	resp := &PublicProviderResponse{
		ID:             p.ID,
		Slug:           p.Slug,
		BusinessName:   p.BusinessName,
		Country:        p.Country,
		RequirePayment: p.Rules.RequirePayment,
	}
	if p.Rules.RequirePayment {
		resp.PaymentLink = p.Rules.PaymentLink
	}
	return resp
}
