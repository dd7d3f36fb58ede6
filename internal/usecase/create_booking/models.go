package create_booking

import (
	"time"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ProviderID int64
	StartTime  time.Time // начало выбранного слота
	EndTime    time.Time // конец выбранного слота
	Customer   domain.Customer
}

// Response модель ответа с созданным бронированием.
// RequirePayment и PaymentLink отдаются клиенту для перехода к оплате.
type Response struct {
	Booking        *domain.Booking
	RequirePayment bool
	PaymentLink    string
}
