package availability

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("availability: provider not found")

	// ErrConfigInvalid возвращается, когда новая конфигурация не проходит проверку. Сохранённые настройки не меняются.
	ErrConfigInvalid = errors.New("availability: invalid configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
