package get_available_slots

import (
	"time"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов.
// Провайдер задаётся либо ProviderID, либо публичным Slug.
type Request struct {
	ProviderID int64
	Slug       string
	Date       time.Time // календарный день, время суток игнорируется
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ProviderID     int64
	Date           time.Time
	SlotDuration   int // 0 - свободная длительность
	RequirePayment bool
	PaymentLink    string
	Slots          []domain.Slot
}
