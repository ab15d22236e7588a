package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/availability"
	"github.com/nordbooking/NB-BookingCore/internal/domain"
	catalogRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/catalog"
	discountRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/discount"
	scheduleRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/schedule"
	tenantClient "github.com/nordbooking/NB-BookingCore/internal/integrations/tenantservice"
	"github.com/nordbooking/NB-BookingCore/internal/pricing"
)

// UseCase use case создания бронирования.
// Проверка вместимости слота и инкремент счётчика промокода выполняются
// в serializable-транзакции: два конкурентных запроса на последнее место
// не могут оба пройти проверку.
type UseCase struct {
	catalogRepo  CatalogRepository
	discountRepo DiscountRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	tenantClient TenantServiceClient
	txManager    TransactionManager
	cache        SlotsCache // nil = кэширование выключено
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	discountRepo DiscountRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	tenantClient TenantServiceClient,
	txManager TransactionManager,
	cache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		discountRepo: discountRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		tenantClient: tenantClient,
		txManager:    txManager,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%d, service=%d, date=%s, start=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Проверяем существование тенанта
	if _, err := uc.tenantClient.GetTenant(ctx, req.TenantID); err != nil {
		if errors.Is(err, tenantClient.ErrTenantNotFound) {
			uc.logger.Warn("CreateBooking: tenant id=%d not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CreateBooking: failed to get tenant id=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	// 3. Проверка вместимости, списание промокода и вставка бронирования -
	// одна serializable-транзакция
	var (
		created       *domain.Booking
		pricingResult *domain.PricingResult
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, result, err := uc.createInTx(txCtx, req, date)
		if err != nil {
			return err
		}
		created = booking
		pricingResult = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Транзакция закоммичена - кэш слотов этой даты устарел
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, req.TenantID, date)
	}

	uc.logger.Info("CreateBooking: created booking id=%d for tenant=%d, total=%d",
		created.ID, req.TenantID, created.FinalTotal)

	return &Response{Booking: created, Pricing: pricingResult}, nil
}

// createInTx выполняет транзакционную часть создания бронирования
func (uc *UseCase) createInTx(ctx context.Context, req *Request, date time.Time) (*domain.Booking, *domain.PricingResult, error) {
	// Услуга с опциями
	service, err := uc.catalogRepo.GetServiceWithOptions(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found for tenant=%d", req.ServiceID, req.TenantID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// Выбор опций
	selections := pricing.Normalize(service, req.Options)
	if err := pricing.Validate(service, selections); err != nil {
		var selErr *pricing.SelectionError
		if errors.As(err, &selErr) {
			uc.logger.Warn("CreateBooking: option validation failed: %v", selErr)
			return nil, nil, &OptionValidationError{OptionID: selErr.OptionID, Reason: selErr.Reason}
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Промокод
	discount, err := uc.resolveDiscount(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	// Слот расписания, в который ложится бронирование
	slot, err := uc.resolveSlot(ctx, req, date)
	if err != nil {
		return nil, nil, err
	}

	// Занятость слота; репозиторий блокирует строки даты (FOR UPDATE),
	// пока транзакция не завершится
	filter := domain.TenantBookingsFilter{
		TenantID:        req.TenantID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false,
	}
	bookings, err := uc.bookingRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	occupied := availability.CountOverlapping(slot.StartTime, slot.EndTime, bookings)
	if occupied >= slot.Capacity {
		uc.logger.Warn("CreateBooking: slot %s-%s on %s is full for tenant=%d (%d/%d)",
			slot.StartTime, slot.EndTime, date.Format(domain.DateFormat),
			req.TenantID, occupied, slot.Capacity)
		return nil, nil, ErrSlotUnavailable
	}

	// Списание использования промокода - атомарный UPDATE с проверкой лимита
	if discount != nil {
		if err := uc.discountRepo.Redeem(ctx, discount.ID); err != nil {
			if errors.Is(err, discountRepo.ErrDiscountExhausted) {
				uc.logger.Warn("CreateBooking: discount code %q exhausted concurrently", discount.Code)
				return nil, nil, &DiscountInvalidError{Code: discount.Code, Reason: "usage_limit_reached"}
			}
			uc.logger.Error("CreateBooking: failed to redeem discount id=%d: %v", discount.ID, err)
			return nil, nil, fmt.Errorf("%w: failed to redeem discount: %v", ErrInternal, err)
		}
	}

	// Цена фиксируется в момент бронирования
	result := pricing.Compute(service, selections, req.Frequency, discount)

	booking := uc.buildBooking(req, date, service, slot, discount, result)

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	return created, result, nil
}

// resolveSlot находит слот расписания с запрошенным временем начала
func (uc *UseCase) resolveSlot(ctx context.Context, req *Request, date time.Time) (*domain.TimeSlot, error) {
	override, err := uc.scheduleRepo.GetOverrideByDate(ctx, req.TenantID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("CreateBooking: failed to get date override: %v", err)
		return nil, fmt.Errorf("%w: failed to get date override: %v", ErrInternal, err)
	}
	if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		override = nil
	}

	if override != nil && override.IsUnavailable {
		uc.logger.Warn("CreateBooking: tenant=%d is closed on %s by date override",
			req.TenantID, date.Format(domain.DateFormat))
		return nil, ErrSlotNotFound
	}

	var recurring []*domain.RecurringSlot
	if override == nil {
		recurring, err = uc.scheduleRepo.GetRecurringByDay(ctx, req.TenantID, domain.DayOfWeek(date))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get recurring slots: %v", err)
			return nil, fmt.Errorf("%w: failed to get recurring slots: %v", ErrInternal, err)
		}
	}

	template := availability.ResolveDayTemplate(override, recurring)

	slot := availability.FindSlot(template, req.StartTime)
	if slot == nil {
		uc.logger.Warn("CreateBooking: no slot starting at %s on %s for tenant=%d",
			req.StartTime, date.Format(domain.DateFormat), req.TenantID)
		return nil, ErrSlotNotFound
	}

	return slot, nil
}

// resolveDiscount ищет и проверяет промокод из запроса.
// Возвращает nil без ошибки, если код не указан.
func (uc *UseCase) resolveDiscount(ctx context.Context, req *Request) (*domain.DiscountCode, error) {
	if req.DiscountCode == nil || domain.NormalizeCode(*req.DiscountCode) == "" {
		return nil, nil
	}

	code := domain.NormalizeCode(*req.DiscountCode)

	discount, err := uc.discountRepo.GetByCode(ctx, req.TenantID, code)
	if err != nil && !errors.Is(err, discountRepo.ErrDiscountNotFound) {
		uc.logger.Error("CreateBooking: failed to get discount code %q: %v", code, err)
		return nil, fmt.Errorf("%w: failed to get discount code: %v", ErrInternal, err)
	}

	if reason := pricing.CheckDiscount(discount, uc.timeProvider.Now()); reason != "" {
		uc.logger.Warn("CreateBooking: discount code %q rejected: %s", code, reason)
		return nil, &DiscountInvalidError{Code: code, Reason: string(reason)}
	}

	return discount, nil
}

// buildBooking собирает бронирование с денормализованным снимком цены
func (uc *UseCase) buildBooking(
	req *Request,
	date time.Time,
	service *domain.Service,
	slot *domain.TimeSlot,
	discount *domain.DiscountCode,
	result *domain.PricingResult,
) *domain.Booking {
	booking := &domain.Booking{
		TenantID:        req.TenantID,
		ServiceID:       req.ServiceID,
		BookingDate:     date,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		DurationMinutes: service.DurationMinutes,
		Frequency:       req.Frequency,
		Status:          domain.StatusPending,

		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,

		ServiceName:    service.Name,
		Subtotal:       result.Subtotal,
		DiscountAmount: result.DiscountAmount,
		FinalTotal:     result.FinalTotal,
	}

	if req.CustomerPhone != "" {
		booking.CustomerPhone = &req.CustomerPhone
	}
	if req.Address != "" {
		booking.Address = &req.Address
	}
	if req.Notes != "" {
		booking.Notes = &req.Notes
	}
	if discount != nil {
		booking.DiscountCodeID = &discount.ID
	}

	return booking
}
