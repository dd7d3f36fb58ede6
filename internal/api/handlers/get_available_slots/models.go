package get_available_slots

import (
	"time"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/WorkSlot-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID     int64           `json:"providerId"`
	Date           string          `json:"date"`
	SlotDuration   int             `json:"slotDuration"`
	RequirePayment bool            `json:"requirePayment"`
	PaymentLink    string          `json:"paymentLink,omitempty"`
	Slots          []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"` // RFC3339, передаётся обратно при бронировании
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.Start.Format(time.RFC3339),
			EndTime:   slot.End.Format(time.RFC3339),
			Label:     slot.Label,
		}
	}

	return &AvailableSlotsResponse{
		ProviderID:     resp.ProviderID,
		Date:           resp.Date.Format(domain.DateFormat),
		SlotDuration:   resp.SlotDuration,
		RequirePayment: resp.RequirePayment,
		PaymentLink:    resp.PaymentLink,
		Slots:          slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров URL
func ToUseCaseRequest(slug, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Slug: slug,
		Date: date,
	}, nil
}
