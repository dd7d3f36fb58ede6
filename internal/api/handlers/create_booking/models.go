package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/WorkSlot-BookingService/internal/domain"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/WorkSlot-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID      int64   `json:"providerId"`
	StartTime       string  `json:"startTime"` // RFC3339, как в ответе со слотами
	EndTime         string  `json:"endTime"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerComment *string `json:"customerComment,omitempty"`
}

// CreateBookingResponse HTTP response model.
// При requirePayment клиент переходит по paymentLink.
type CreateBookingResponse struct {
	Booking        *models.BookingResponse `json:"booking"`
	RequirePayment bool                    `json:"requirePayment"`
	PaymentLink    string                  `json:"paymentLink,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &createBooking.Request{
		ProviderID: r.ProviderID,
		StartTime:  start,
		EndTime:    end,
		Customer: domain.Customer{
			Name:    r.CustomerName,
			Email:   r.CustomerEmail,
			Comment: r.CustomerComment,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:        models.FromDomainBooking(resp.Booking),
		RequirePayment: resp.RequirePayment,
		PaymentLink:    resp.PaymentLink,
	}
}
