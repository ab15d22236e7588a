package compute_pricing

import (
	"context"
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	// GetServiceWithOptions получает услугу тенанта вместе с опциями, вариантами и sqm-диапазонами
	GetServiceWithOptions(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
}

// DiscountRepository интерфейс репозитория промокодов
type DiscountRepository interface {
	// GetByCode ищет промокод тенанта без учёта регистра
	GetByCode(ctx context.Context, tenantID int64, code string) (*domain.DiscountCode, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
