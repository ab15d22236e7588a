package compute_pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	catalogRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/catalog"
	discountRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/discount"
	"github.com/nordbooking/NB-BookingCore/internal/pricing"
)

// UseCase use case расчёта цены бронирования.
// Отдаёт детализацию, которую публичная форма показывает покупателю
// на шаге подтверждения; та же логика выполняется при создании
// бронирования, чтобы показанная и списанная цена не расходились.
type UseCase struct {
	catalogRepo  CatalogRepository
	discountRepo DiscountRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	discountRepo DiscountRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		discountRepo: discountRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case расчёта цены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ComputePricing: tenant=%d, service=%d, options=%d, frequency=%s",
		req.TenantID, req.ServiceID, len(req.Options), req.Frequency)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ComputePricing: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу с опциями
	service, err := uc.catalogRepo.GetServiceWithOptions(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("ComputePricing: service id=%d not found for tenant=%d", req.ServiceID, req.TenantID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ComputePricing: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Нормализуем и валидируем выбор опций.
	// Валидация - предусловие расчёта: сам расчёт ошибок не возвращает.
	selections := pricing.Normalize(service, req.Options)
	if err := pricing.Validate(service, selections); err != nil {
		var selErr *pricing.SelectionError
		if errors.As(err, &selErr) {
			uc.logger.Warn("ComputePricing: option validation failed: %v", selErr)
			return nil, &OptionValidationError{OptionID: selErr.OptionID, Reason: selErr.Reason}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Разрешаем промокод, если указан
	discount, err := uc.resolveDiscount(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Считаем цену
	result := pricing.Compute(service, selections, req.Frequency, discount)

	uc.logger.Info("ComputePricing: tenant=%d, service=%d: subtotal=%d, discount=%d, total=%d",
		req.TenantID, req.ServiceID, result.Subtotal, result.DiscountAmount, result.FinalTotal)

	return fromResult(req.TenantID, req.ServiceID, result), nil
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
		uc.logger.Error("ComputePricing: failed to get discount code %q: %v", code, err)
		return nil, fmt.Errorf("%w: failed to get discount code: %v", ErrInternal, err)
	}

	if reason := pricing.CheckDiscount(discount, uc.timeProvider.Now()); reason != "" {
		uc.logger.Warn("ComputePricing: discount code %q rejected: %s", code, reason)
		return nil, &DiscountInvalidError{Code: code, Reason: DiscountRejectReason(reason)}
	}

	return discount, nil
}
