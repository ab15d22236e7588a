package discounts

import (
	"context"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
)

// DiscountRepository интерфейс репозитория промокодов
type DiscountRepository interface {
	Create(ctx context.Context, code *domain.DiscountCode) (*domain.DiscountCode, error)
	GetByID(ctx context.Context, tenantID, id int64) (*domain.DiscountCode, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]*domain.DiscountCode, error)
	Update(ctx context.Context, code *domain.DiscountCode) error
	Delete(ctx context.Context, tenantID, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
