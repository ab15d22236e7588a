package create_booking

import (
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

// Request параметры создания бронирования
type Request struct {
	TenantID      int64
	ServiceID     int64
	Date          time.Time
	StartTime     types.TimeString
	Frequency     domain.Frequency
	Options       []domain.ConfiguredOption
	DiscountCode  *string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string
	Notes         string
}

// Response результат создания бронирования
type Response struct {
	Booking *domain.Booking
	Pricing *domain.PricingResult
}
