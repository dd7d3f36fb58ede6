package domain

import "time"

// Provider профиль провайдера, которым владеет сервис профилей
type Provider struct {
	ID           int64
	Slug         string
	BusinessName string
	Country      *string // хранится как есть, часовой пояс не выводится
	Availability AvailabilityConfig
	Rules        BookingRules
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
