package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/availability"
	"github.com/nordbooking/NB-BookingCore/internal/domain"
	scheduleRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/schedule"
	tenantClient "github.com/nordbooking/NB-BookingCore/internal/integrations/tenantservice"
)

// UseCase use case получения доступных слотов на дату
type UseCase struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	tenantClient TenantServiceClient
	cache        SlotsCache // nil = кэширование выключено
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	tenantClient TenantServiceClient,
	cache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		tenantClient: tenantClient,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%d, date=%s",
		req.TenantID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Проверяем существование тенанта
	if _, err := uc.tenantClient.GetTenant(ctx, req.TenantID); err != nil {
		if errors.Is(err, tenantClient.ErrTenantNotFound) {
			uc.logger.Warn("GetAvailableSlots: tenant id=%d not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get tenant id=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	// 3. Пробуем кэш
	if uc.cache != nil {
		if slots, ok := uc.cache.Get(ctx, req.TenantID, date); ok {
			uc.logger.Info("GetAvailableSlots: cache hit for tenant=%d, date=%s",
				req.TenantID, date.Format(domain.DateFormat))
			return &Response{TenantID: req.TenantID, Date: date, Slots: fromDomainSlots(slots)}, nil
		}
	}

	// 4. Разрешаем слоты дня
	slots, err := uc.resolveDay(ctx, req.TenantID, date)
	if err != nil {
		return nil, err
	}

	// 5. Кладём в кэш
	if uc.cache != nil {
		uc.cache.Set(ctx, req.TenantID, date, slots)
	}

	uc.logger.Info("GetAvailableSlots: resolved %d slots for tenant=%d, date=%s",
		len(slots), req.TenantID, date.Format(domain.DateFormat))

	return &Response{
		TenantID: req.TenantID,
		Date:     date,
		Slots:    fromDomainSlots(slots),
	}, nil
}

// resolveDay разрешает слоты дня: override > recurring, затем занятость
func (uc *UseCase) resolveDay(ctx context.Context, tenantID int64, date time.Time) ([]domain.TimeSlot, error) {
	// Переопределение даты (если есть) имеет абсолютный приоритет
	override, err := uc.scheduleRepo.GetOverrideByDate(ctx, tenantID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get date override: %v", err)
		return nil, fmt.Errorf("%w: failed to get date override: %v", ErrInternal, err)
	}
	if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		override = nil
	}

	// День закрыт переопределением - недельный шаблон даже не читаем
	if override != nil && override.IsUnavailable {
		uc.logger.Info("GetAvailableSlots: tenant=%d is closed on %s by date override",
			tenantID, date.Format(domain.DateFormat))
		return []domain.TimeSlot{}, nil
	}

	var recurring []*domain.RecurringSlot
	if override == nil {
		recurring, err = uc.scheduleRepo.GetRecurringByDay(ctx, tenantID, domain.DayOfWeek(date))
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get recurring slots: %v", err)
			return nil, fmt.Errorf("%w: failed to get recurring slots: %v", ErrInternal, err)
		}
	}

	template := availability.ResolveDayTemplate(override, recurring)
	if len(template) == 0 {
		return template, nil
	}

	// Занятость считаем только по активным бронированиям этой даты
	filter := domain.TenantBookingsFilter{
		TenantID:        tenantID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return availability.ApplyLoad(template, bookings), nil
}
