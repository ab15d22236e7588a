package manage_discounts

import (
	"context"

	"github.com/nordbooking/NB-BookingCore/internal/service/discounts/models"
)

type DiscountsService interface {
	Create(ctx context.Context, req *models.SaveDiscountRequest) (*models.DiscountResponse, error)
	GetByID(ctx context.Context, tenantID, id int64) (*models.DiscountResponse, error)
	List(ctx context.Context, tenantID int64) (*models.DiscountListResponse, error)
	Update(ctx context.Context, id int64, req *models.SaveDiscountRequest) error
	Delete(ctx context.Context, tenantID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
