package get_available_slots

import (
	"context"
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/internal/integrations/tenantservice"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	// GetOverrideByDate получает переопределение даты тенанта, если есть
	GetOverrideByDate(ctx context.Context, tenantID int64, date time.Time) (*domain.DateOverride, error)
	// GetRecurringByDay получает все recurring-слоты тенанта на день недели (включая неактивные)
	GetRecurringByDay(ctx context.Context, tenantID int64, dayOfWeek int) ([]*domain.RecurringSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByTenantWithFilter получает бронирования тенанта по фильтру
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, error)
}

// TenantServiceClient интерфейс клиента сервиса аккаунтов платформы
type TenantServiceClient interface {
	GetTenant(ctx context.Context, tenantID int64) (*tenantservice.Tenant, error)
}

// SlotsCache интерфейс кэша разрешённых слотов дня.
// Может быть nil - тогда кэширование выключено.
type SlotsCache interface {
	Get(ctx context.Context, tenantID int64, date time.Time) ([]domain.TimeSlot, bool)
	Set(ctx context.Context, tenantID int64, date time.Time, slots []domain.TimeSlot)
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
