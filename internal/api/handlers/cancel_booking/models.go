package cancel_booking

import "github.com/nordbooking/NB-BookingCore/internal/service/bookings/models"

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
	ByCustomer         bool   `json:"byCustomer,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(tenantID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		TenantID:           tenantID,
		CancellationReason: r.CancellationReason,
		ByCustomer:         r.ByCustomer,
	}
}
