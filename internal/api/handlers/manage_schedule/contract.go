package manage_schedule

import (
	"context"
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, tenantID int64, from, to time.Time) (*models.ScheduleResponse, error)
	CreateRecurringSlot(ctx context.Context, req *models.SaveRecurringSlotRequest) (*models.RecurringSlotResponse, error)
	UpdateRecurringSlot(ctx context.Context, slotID int64, req *models.SaveRecurringSlotRequest) error
	DeleteRecurringSlot(ctx context.Context, tenantID, slotID int64) error
	SetDayStatus(ctx context.Context, req *models.SetDayStatusRequest) error
	SaveDateOverride(ctx context.Context, req *models.SaveDateOverrideRequest) (*models.DateOverrideResponse, error)
	DeleteDateOverride(ctx context.Context, tenantID int64, rawDate string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
