package domain

// Значения по умолчанию
const (
	DefaultSlotDurationMinutes = 30
	DefaultHoldDurationMinutes = 30

	// Длительность слота "specific", если у провайдера свободная длительность (slot_duration = 0)
	CustomSpecificSlotMinutes = 60

	DefaultLegacyStartTime = "09:00"
	DefaultLegacyEndTime   = "17:00"
)

// Ограничения бизнес-валидации
const (
	MaxSlotDurationMinutes = 480   // 8 часов
	MaxHoldDurationMinutes = 10080 // неделя
	MaxCommentLength       = 500
	MaxCustomerNameLength  = 200
	MaxCustomerEmailLength = 254
	MaxEntriesPerDay       = 48
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActionableStatuses статусы, по которым провайдер ещё может принять решение
var ActionableStatuses = []BookingStatus{
	StatusPending,
	StatusAwaitingPayment,
}

// OccupyingStatuses статусы, при которых бронирование может занимать слот
// (для удержаний дополнительно проверяется срок)
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusAwaitingPayment,
	StatusConfirmed,
}
