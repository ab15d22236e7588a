package create_booking

import (
	"context"
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/internal/integrations/tenantservice"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetServiceWithOptions(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
}

// DiscountRepository интерфейс репозитория промокодов
type DiscountRepository interface {
	// GetByCode ищет промокод тенанта без учёта регистра
	GetByCode(ctx context.Context, tenantID int64, code string) (*domain.DiscountCode, error)
	// Redeem атомарно инкрементирует счётчик использований с проверкой лимита.
	// Возвращает ErrDiscountExhausted, если лимит уже исчерпан.
	Redeem(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetOverrideByDate(ctx context.Context, tenantID int64, date time.Time) (*domain.DateOverride, error)
	GetRecurringByDay(ctx context.Context, tenantID int64, dayOfWeek int) ([]*domain.RecurringSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, error)
}

// TenantServiceClient интерфейс клиента сервиса аккаунтов платформы
type TenantServiceClient interface {
	GetTenant(ctx context.Context, tenantID int64) (*tenantservice.Tenant, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotsCache интерфейс инвалидации кэша слотов.
// Может быть nil - тогда кэширование выключено.
type SlotsCache interface {
	Invalidate(ctx context.Context, tenantID int64, date time.Time)
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
