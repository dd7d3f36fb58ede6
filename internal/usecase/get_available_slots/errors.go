package get_available_slots

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("get_available_slots: provider not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrConfigInvalid возвращается, когда сохранённая конфигурация провайдера некорректна
	ErrConfigInvalid = errors.New("get_available_slots: provider availability config is invalid")

	// ErrStorage возвращается при ошибках хранилища, запрос можно повторить
	ErrStorage = errors.New("get_available_slots: storage error")
)
