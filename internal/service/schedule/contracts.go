package schedule

import (
	"context"
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	CreateRecurring(ctx context.Context, slot *domain.RecurringSlot) (*domain.RecurringSlot, error)
	UpdateRecurring(ctx context.Context, slot *domain.RecurringSlot) error
	DeleteRecurring(ctx context.Context, tenantID, slotID int64) error
	GetRecurringByTenant(ctx context.Context, tenantID int64) ([]*domain.RecurringSlot, error)
	SetRecurringDayStatus(ctx context.Context, tenantID int64, dayOfWeek int, isActive bool) (int64, error)
	UpsertOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error)
	DeleteOverride(ctx context.Context, tenantID int64, date time.Time) error
	GetOverridesInRange(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.DateOverride, error)
}

// SlotsCache интерфейс инвалидации кэша слотов.
// Может быть nil - тогда кэширование выключено.
type SlotsCache interface {
	Invalidate(ctx context.Context, tenantID int64, date time.Time)
	InvalidateTenant(ctx context.Context, tenantID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
