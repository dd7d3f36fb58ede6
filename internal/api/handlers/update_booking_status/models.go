package update_booking_status

import "github.com/m04kA/WorkSlot-BookingService/internal/service/bookings/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status          string  `json:"status"` // confirmed | declined
	ProviderComment *string `json:"providerComment,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest() *models.SetStatusRequest {
	return &models.SetStatusRequest{
		Status:          r.Status,
		ProviderComment: r.ProviderComment,
	}
}
