package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	scheduleRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/schedule"
	"github.com/nordbooking/NB-BookingCore/internal/service/schedule/models"
	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

// Service сервис управления расписанием тенанта: недельным шаблоном
// слотов и переопределениями дат
type Service struct {
	scheduleRepo ScheduleRepository
	cache        SlotsCache // nil = кэширование выключено
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	cache SlotsCache,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		cache:        cache,
		logger:       logger,
	}
}

// GetSchedule получает недельный шаблон тенанта и переопределения
// дат периода [from, to]
func (s *Service) GetSchedule(ctx context.Context, tenantID int64, from, to time.Time) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for tenant=%d, period=%s to %s",
		tenantID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	slots, err := s.scheduleRepo.GetRecurringByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	overrides, err := s.scheduleRepo.GetOverridesInRange(ctx, tenantID, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		s.logger.Error("GetSchedule: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: fetched %d recurring slots, %d overrides for tenant=%d",
		len(slots), len(overrides), tenantID)
	return models.FromDomainSchedule(slots, overrides), nil
}

// CreateRecurringSlot создает слот недельного шаблона
func (s *Service) CreateRecurringSlot(ctx context.Context, req *models.SaveRecurringSlotRequest) (*models.RecurringSlotResponse, error) {
	s.logger.Info("CreateRecurringSlot: tenant=%d, day=%d, %s-%s, capacity=%d",
		req.TenantID, req.DayOfWeek, req.StartTime, req.EndTime, req.Capacity)

	slot := req.ToDomain(0)
	if err := s.validateRecurringSlot(slot); err != nil {
		s.logger.Warn("CreateRecurringSlot: validation failed for tenant=%d: %v", req.TenantID, err)
		return nil, err
	}

	created, err := s.scheduleRepo.CreateRecurring(ctx, slot)
	if err != nil {
		s.logger.Error("CreateRecurringSlot: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: CreateRecurringSlot - repository error: %v", ErrInternal, err)
	}

	s.invalidateTenant(ctx, req.TenantID)

	s.logger.Info("CreateRecurringSlot: created slot id=%d for tenant=%d", created.ID, req.TenantID)
	return models.FromDomainRecurringSlot(created), nil
}

// UpdateRecurringSlot обновляет слот недельного шаблона
func (s *Service) UpdateRecurringSlot(ctx context.Context, slotID int64, req *models.SaveRecurringSlotRequest) error {
	s.logger.Info("UpdateRecurringSlot: slot id=%d, tenant=%d", slotID, req.TenantID)

	slot := req.ToDomain(slotID)
	if err := s.validateRecurringSlot(slot); err != nil {
		s.logger.Warn("UpdateRecurringSlot: validation failed for slot id=%d: %v", slotID, err)
		return err
	}

	if err := s.scheduleRepo.UpdateRecurring(ctx, slot); err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotNotFound) {
			s.logger.Warn("UpdateRecurringSlot: slot id=%d not found for tenant=%d", slotID, req.TenantID)
			return ErrSlotNotFound
		}
		s.logger.Error("UpdateRecurringSlot: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: UpdateRecurringSlot - repository error: %v", ErrInternal, err)
	}

	s.invalidateTenant(ctx, req.TenantID)

	s.logger.Info("UpdateRecurringSlot: updated slot id=%d for tenant=%d", slotID, req.TenantID)
	return nil
}

// DeleteRecurringSlot удаляет слот недельного шаблона.
// Существующие бронирования слота не затрагиваются.
func (s *Service) DeleteRecurringSlot(ctx context.Context, tenantID, slotID int64) error {
	s.logger.Info("DeleteRecurringSlot: slot id=%d, tenant=%d", slotID, tenantID)

	if err := s.scheduleRepo.DeleteRecurring(ctx, tenantID, slotID); err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotNotFound) {
			s.logger.Warn("DeleteRecurringSlot: slot id=%d not found for tenant=%d", slotID, tenantID)
			return ErrSlotNotFound
		}
		s.logger.Error("DeleteRecurringSlot: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: DeleteRecurringSlot - repository error: %v", ErrInternal, err)
	}

	s.invalidateTenant(ctx, tenantID)

	s.logger.Info("DeleteRecurringSlot: deleted slot id=%d for tenant=%d", slotID, tenantID)
	return nil
}

// SetDayStatus массово включает или выключает все слоты дня недели
func (s *Service) SetDayStatus(ctx context.Context, req *models.SetDayStatusRequest) error {
	s.logger.Info("SetDayStatus: tenant=%d, day=%d, active=%t", req.TenantID, req.DayOfWeek, req.IsActive)

	if req.DayOfWeek < domain.MinDayOfWeek || req.DayOfWeek > domain.MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be between %d and %d",
			ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	affected, err := s.scheduleRepo.SetRecurringDayStatus(ctx, req.TenantID, req.DayOfWeek, req.IsActive)
	if err != nil {
		s.logger.Error("SetDayStatus: repository error for tenant=%d: %v", req.TenantID, err)
		return fmt.Errorf("%w: SetDayStatus - repository error: %v", ErrInternal, err)
	}

	if affected > 0 {
		s.invalidateTenant(ctx, req.TenantID)
	}

	s.logger.Info("SetDayStatus: toggled %d slots for tenant=%d, day=%d", affected, req.TenantID, req.DayOfWeek)
	return nil
}

// SaveDateOverride создает или заменяет переопределение даты.
// Закрытая дата (isUnavailable) хранится без времени и вместимости.
func (s *Service) SaveDateOverride(ctx context.Context, req *models.SaveDateOverrideRequest) (*models.DateOverrideResponse, error) {
	s.logger.Info("SaveDateOverride: tenant=%d, date=%s, unavailable=%t",
		req.TenantID, req.Date, req.IsUnavailable)

	date, err := models.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("SaveDateOverride: invalid date %q for tenant=%d", req.Date, req.TenantID)
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	override := &domain.DateOverride{
		TenantID:      req.TenantID,
		Date:          date,
		IsUnavailable: req.IsUnavailable,
	}

	if !req.IsUnavailable {
		override.StartTime = types.TimeString(req.StartTime)
		override.EndTime = types.TimeString(req.EndTime)
		override.Capacity = req.Capacity

		if err := s.validateTimeRange(override.StartTime, override.EndTime); err != nil {
			s.logger.Warn("SaveDateOverride: validation failed for tenant=%d: %v", req.TenantID, err)
			return nil, err
		}
		if err := s.validateCapacity(override.Capacity); err != nil {
			s.logger.Warn("SaveDateOverride: validation failed for tenant=%d: %v", req.TenantID, err)
			return nil, err
		}
	}

	saved, err := s.scheduleRepo.UpsertOverride(ctx, override)
	if err != nil {
		s.logger.Error("SaveDateOverride: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: SaveDateOverride - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, req.TenantID, date)
	}

	s.logger.Info("SaveDateOverride: saved override id=%d for tenant=%d, date=%s",
		saved.ID, req.TenantID, req.Date)
	return models.FromDomainOverride(saved), nil
}

// DeleteDateOverride удаляет переопределение даты - дата возвращается
// к недельному шаблону
func (s *Service) DeleteDateOverride(ctx context.Context, tenantID int64, rawDate string) error {
	s.logger.Info("DeleteDateOverride: tenant=%d, date=%s", tenantID, rawDate)

	date, err := models.ParseDate(rawDate)
	if err != nil {
		s.logger.Warn("DeleteDateOverride: invalid date %q for tenant=%d", rawDate, tenantID)
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if err := s.scheduleRepo.DeleteOverride(ctx, tenantID, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteDateOverride: override not found for tenant=%d, date=%s", tenantID, rawDate)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteDateOverride: repository error for tenant=%d: %v", tenantID, err)
		return fmt.Errorf("%w: DeleteDateOverride - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, tenantID, date)
	}

	s.logger.Info("DeleteDateOverride: deleted override for tenant=%d, date=%s", tenantID, rawDate)
	return nil
}

// Вспомогательные методы

func (s *Service) validateRecurringSlot(slot *domain.RecurringSlot) error {
	if slot.DayOfWeek < domain.MinDayOfWeek || slot.DayOfWeek > domain.MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be between %d and %d",
			ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}
	if err := s.validateTimeRange(slot.StartTime, slot.EndTime); err != nil {
		return err
	}
	return s.validateCapacity(slot.Capacity)
}

func (s *Service) validateTimeRange(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: start time %s must be before end time %s", ErrInvalidTimeRange, start, end)
	}
	return nil
}

func (s *Service) validateCapacity(capacity int) error {
	if capacity < domain.MinSlotCapacity || capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidCapacity, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}
	return nil
}

// invalidateTenant сбрасывает кэш всех дат тенанта - изменение недельного
// шаблона затрагивает неопределённое множество дат
func (s *Service) invalidateTenant(ctx context.Context, tenantID int64) {
	if s.cache != nil {
		s.cache.InvalidateTenant(ctx, tenantID)
	}
}
