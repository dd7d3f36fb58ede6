package bookings

import (
	"errors"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или принадлежит другому провайдеру
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidTransition возвращается при недопустимой смене статуса. Состояние бронирования не меняется.
	ErrInvalidTransition = domain.ErrInvalidTransition

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при ошибках хранилища, запрос можно повторить
	ErrInternal = errors.New("bookings: internal error")
)
