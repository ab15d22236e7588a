package get_booking

import (
	"context"

	"github.com/nordbooking/NB-BookingCore/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, id int64, tenantID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
