package create_booking

import (
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	createBooking "github.com/nordbooking/NB-BookingCore/internal/usecase/create_booking"
	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

// OptionSelection выбранное значение опции из формы бронирования
type OptionSelection struct {
	OptionID int64  `json:"optionId"`
	Value    string `json:"value"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     int64             `json:"serviceId"`
	BookingDate   string            `json:"bookingDate"` // "2025-10-15"
	StartTime     string            `json:"startTime"`   // "10:00"
	Frequency     string            `json:"frequency"`
	Options       []OptionSelection `json:"options,omitempty"`
	DiscountCode  *string           `json:"discountCode,omitempty"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	CustomerPhone string            `json:"customerPhone,omitempty"`
	Address       string            `json:"address,omitempty"`
	Notes         string            `json:"notes,omitempty"`
}

// PricingBreakdown детализация цены созданного бронирования
type PricingBreakdown struct {
	BasePrice         int64 `json:"basePrice"`
	OptionsTotal      int64 `json:"optionsTotal"`
	Subtotal          int64 `json:"subtotal"`
	FrequencyDiscount int64 `json:"frequencyDiscount"`
	CodeDiscount      int64 `json:"codeDiscount"`
	DiscountAmount    int64 `json:"discountAmount"`
	FinalTotal        int64 `json:"finalTotal"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	TenantID        int64   `json:"tenantId"`
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Frequency       string  `json:"frequency"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	Notes           *string `json:"notes,omitempty"`

	Pricing PricingBreakdown `json:"pricing"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	options := make([]domain.ConfiguredOption, len(r.Options))
	for i, opt := range r.Options {
		options[i] = domain.ConfiguredOption{
			OptionID:      opt.OptionID,
			SelectedValue: opt.Value,
		}
	}

	return &createBooking.Request{
		TenantID:      tenantID,
		ServiceID:     r.ServiceID,
		Date:          bookingDate,
		StartTime:     startTime,
		Frequency:     domain.Frequency(r.Frequency),
		Options:       options,
		DiscountCode:  r.DiscountCode,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Address:       r.Address,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	booking := resp.Booking
	pricing := resp.Pricing

	return &BookingResponse{
		ID:              booking.ID,
		TenantID:        booking.TenantID,
		ServiceID:       booking.ServiceID,
		BookingDate:     booking.BookingDate.Format(domain.DateFormat),
		StartTime:       booking.StartTime.String(),
		EndTime:         booking.EndTime.String(),
		DurationMinutes: booking.DurationMinutes,
		Frequency:       string(booking.Frequency),
		Status:          string(booking.Status),
		ServiceName:     booking.ServiceName,
		CustomerName:    booking.CustomerName,
		CustomerEmail:   booking.CustomerEmail,
		Notes:           booking.Notes,
		Pricing: PricingBreakdown{
			BasePrice:         int64(pricing.BasePrice),
			OptionsTotal:      int64(pricing.OptionsTotal()),
			Subtotal:          int64(pricing.Subtotal),
			FrequencyDiscount: int64(pricing.FrequencyDiscount),
			CodeDiscount:      int64(pricing.CodeDiscount),
			DiscountAmount:    int64(pricing.DiscountAmount),
			FinalTotal:        int64(pricing.FinalTotal),
		},
		CreatedAt: booking.CreatedAt.Format(time.RFC3339),
	}
}
