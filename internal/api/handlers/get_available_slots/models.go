package get_available_slots

import (
	"github.com/nordbooking/NB-BookingCore/internal/domain"
	getAvailableSlots "github.com/nordbooking/NB-BookingCore/internal/usecase/get_available_slots"
)

// SlotResponse временной слот дня
type SlotResponse struct {
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Capacity  int    `json:"capacity"`
	Remaining int    `json:"remaining"`
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	TenantID int64          `json:"tenantId"`
	Date     string         `json:"date"` // "2025-10-15"
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Capacity:  s.Capacity,
			Remaining: s.Remaining,
			Available: s.Available,
		}
	}

	return &AvailableSlotsResponse{
		TenantID: resp.TenantID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}
