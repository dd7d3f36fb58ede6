package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrSlotUnavailable возвращается, когда выбранный слот сейчас недоступен. Клиенту стоит выбрать другой.
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrConfigInvalid возвращается, когда сохранённая конфигурация провайдера некорректна
	ErrConfigInvalid = errors.New("create_booking: provider availability config is invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStorage возвращается при ошибках хранилища. Бронирование не создано, запрос можно повторить.
	ErrStorage = errors.New("create_booking: storage error")
)
