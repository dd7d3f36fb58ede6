package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending         BookingStatus = "pending"
	StatusAwaitingPayment BookingStatus = "awaiting_payment"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusDeclined        BookingStatus = "declined"
	StatusExpired         BookingStatus = "expired"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAwaitingPayment, StatusConfirmed, StatusDeclined, StatusExpired:
		return true
	}
	return false
}

// IsActionable провайдер ещё может подтвердить или отклонить бронирование
func (s BookingStatus) IsActionable() bool {
	return s == StatusPending || s == StatusAwaitingPayment
}

// IsTerminal статус больше не меняется
func (s BookingStatus) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusDeclined || s == StatusExpired
}

// Booking заявка клиента на слот провайдера
type Booking struct {
	ID              uuid.UUID
	ProviderID      int64
	CustomerName    string
	CustomerEmail   string
	CustomerComment *string
	StartTime       time.Time
	EndTime         time.Time
	Status          BookingStatus
	ProviderComment *string
	HoldExpiresAt   time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Customer данные клиента из формы бронирования
type Customer struct {
	Name    string
	Email   string
	Comment *string
}

// Validate проверяет данные клиента
func (c Customer) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidBooking)
	}
	if utf8.RuneCountInString(name) > MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name exceeds %d characters", ErrInvalidBooking, MaxCustomerNameLength)
	}
	if len(c.Email) > MaxCustomerEmailLength {
		return fmt.Errorf("%w: customer email is too long", ErrInvalidBooking)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("%w: customer email: %v", ErrInvalidBooking, err)
	}
	if c.Comment != nil && utf8.RuneCountInString(*c.Comment) > MaxCommentLength {
		return fmt.Errorf("%w: customer comment exceeds %d characters", ErrInvalidBooking, MaxCommentLength)
	}
	return nil
}

// NewBooking создаёт бронирование в начальном статусе по правилам провайдера
func NewBooking(id uuid.UUID, providerID int64, customer Customer, start, end time.Time, rules BookingRules, now time.Time) (*Booking, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrInvalidBooking)
	}

	return &Booking{
		ID:              id,
		ProviderID:      providerID,
		CustomerName:    strings.TrimSpace(customer.Name),
		CustomerEmail:   customer.Email,
		CustomerComment: customer.Comment,
		StartTime:       start,
		EndTime:         end,
		Status:          rules.InitialStatus(),
		HoldExpiresAt:   rules.HoldExpiresAt(now),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsHoldExpired удержание истекло, а провайдер так и не принял решение
func (b *Booking) IsHoldExpired(now time.Time) bool {
	return b.Status.IsActionable() && now.After(b.HoldExpiresAt)
}

// OccupiesSlotAt занимает ли бронирование свой интервал в момент now
func (b *Booking) OccupiesSlotAt(now time.Time) bool {
	if b.Status == StatusConfirmed {
		return true
	}
	return b.Status.IsActionable() && !b.IsHoldExpired(now)
}

// Overlaps пересечение полуоткрытых интервалов [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndTime) && end.After(b.StartTime)
}

// CanTransitionTo проверка по таблице переходов без учёта времени
func (b *Booking) CanTransitionTo(to BookingStatus) bool {
	if !b.Status.IsActionable() {
		return false
	}
	switch to {
	case StatusConfirmed, StatusDeclined, StatusExpired:
		return true
	}
	return false
}

// Decide подтверждение или отклонение провайдером
func (b *Booking) Decide(to BookingStatus, comment *string, now time.Time) error {
	if to != StatusConfirmed && to != StatusDeclined {
		return fmt.Errorf("%w: provider can only confirm or decline, got %q", ErrInvalidTransition, to)
	}
	if !b.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}
	if b.IsHoldExpired(now) {
		return fmt.Errorf("%w: hold expired at %s", ErrInvalidTransition, b.HoldExpiresAt.Format(time.RFC3339))
	}
	if comment != nil && utf8.RuneCountInString(*comment) > MaxCommentLength {
		return fmt.Errorf("%w: provider comment exceeds %d characters", ErrInvalidBooking, MaxCommentLength)
	}

	b.Status = to
	b.ProviderComment = comment
	b.UpdatedAt = now
	return nil
}

// Expire переводит просроченное удержание в expired.
// Возвращает false, если бронирование не просрочено или уже в конечном статусе.
func (b *Booking) Expire(now time.Time) bool {
	if !b.IsHoldExpired(now) {
		return false
	}
	b.Status = StatusExpired
	b.UpdatedAt = now
	return true
}

// ProviderBookingsFilter фильтр списка бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID int64
	Status     *BookingStatus
	From       *time.Time // начало >= From
	To         *time.Time // начало < To
	Limit      uint64
}
