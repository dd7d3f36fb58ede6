package domain

import "errors"

var (
	// ErrConfigInvalid некорректная конфигурация расписания или правил бронирования
	ErrConfigInvalid = errors.New("domain: invalid availability configuration")

	// ErrInvalidTransition недопустимая смена статуса бронирования
	ErrInvalidTransition = errors.New("domain: invalid booking status transition")

	// ErrInvalidBooking некорректные данные бронирования
	ErrInvalidBooking = errors.New("domain: invalid booking")
)
