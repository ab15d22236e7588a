package update_booking_status

import "github.com/nordbooking/NB-BookingCore/internal/service/bookings/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(tenantID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		TenantID: tenantID,
		Status:   r.Status,
	}
}
