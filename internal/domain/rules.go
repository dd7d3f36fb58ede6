package domain

import (
	"fmt"
	"net/url"
	"time"
)

// BookingRules правила бронирования провайдера
type BookingRules struct {
	RequirePayment bool   `json:"require_payment"`
	PaymentLink    string `json:"payment_link,omitempty"`
	HoldDuration   int    `json:"hold_duration,omitempty"` // минуты
}

// HoldDurationMinutes действующее время удержания слота
func (r BookingRules) HoldDurationMinutes() int {
	if r.HoldDuration <= 0 {
		return DefaultHoldDurationMinutes
	}
	return r.HoldDuration
}

// HoldExpiresAt момент, после которого неподтверждённое бронирование просрочено
func (r BookingRules) HoldExpiresAt(createdAt time.Time) time.Time {
	return createdAt.Add(time.Duration(r.HoldDurationMinutes()) * time.Minute)
}

// InitialStatus статус нового бронирования
func (r BookingRules) InitialStatus() BookingStatus {
	if r.RequirePayment {
		return StatusAwaitingPayment
	}
	return StatusPending
}

// Validate проверяет правила перед сохранением
func (r BookingRules) Validate() error {
	if r.HoldDuration < 0 || r.HoldDuration > MaxHoldDurationMinutes {
		return fmt.Errorf("%w: hold_duration must be between 0 and %d minutes", ErrConfigInvalid, MaxHoldDurationMinutes)
	}

	if !r.RequirePayment {
		return nil
	}

	if r.PaymentLink == "" {
		return fmt.Errorf("%w: payment_link is required when payment is required", ErrConfigInvalid)
	}
	u, err := url.Parse(r.PaymentLink)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: payment_link must be an absolute http(s) URL", ErrConfigInvalid)
	}

	return nil
}
