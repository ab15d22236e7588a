package discounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	discountRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/discount"
	"github.com/nordbooking/NB-BookingCore/internal/service/discounts/models"
)

// Service сервис управления промокодами тенанта
type Service struct {
	discountRepo DiscountRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса промокодов
func NewService(discountRepo DiscountRepository, logger Logger) *Service {
	return &Service{
		discountRepo: discountRepo,
		logger:       logger,
	}
}

// Create создает промокод тенанта
func (s *Service) Create(ctx context.Context, req *models.SaveDiscountRequest) (*models.DiscountResponse, error) {
	s.logger.Info("Create: creating discount code %q for tenant=%d", req.Code, req.TenantID)

	code, err := s.toValidatedDomain(req, 0)
	if err != nil {
		s.logger.Warn("Create: validation failed for tenant=%d: %v", req.TenantID, err)
		return nil, err
	}

	created, err := s.discountRepo.Create(ctx, code)
	if err != nil {
		if errors.Is(err, discountRepo.ErrCodeTaken) {
			s.logger.Warn("Create: code %q already exists for tenant=%d", req.Code, req.TenantID)
			return nil, ErrCodeTaken
		}
		s.logger.Error("Create: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created discount id=%d for tenant=%d", created.ID, req.TenantID)
	return models.FromDomainDiscount(created), nil
}

// GetByID получает промокод тенанта
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.DiscountResponse, error) {
	s.logger.Info("GetByID: fetching discount id=%d for tenant=%d", id, tenantID)

	code, err := s.discountRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, discountRepo.ErrDiscountNotFound) {
			s.logger.Warn("GetByID: discount id=%d not found for tenant=%d", id, tenantID)
			return nil, ErrDiscountNotFound
		}
		s.logger.Error("GetByID: repository error for discount id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDiscount(code), nil
}

// List получает все промокоды тенанта
func (s *Service) List(ctx context.Context, tenantID int64) (*models.DiscountListResponse, error) {
	s.logger.Info("List: fetching discounts for tenant=%d", tenantID)

	codes, err := s.discountRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d discounts for tenant=%d", len(codes), tenantID)
	return models.FromDomainDiscountList(codes), nil
}

// Update обновляет промокод тенанта.
// Счётчик использований при обновлении не сбрасывается.
func (s *Service) Update(ctx context.Context, id int64, req *models.SaveDiscountRequest) error {
	s.logger.Info("Update: updating discount id=%d for tenant=%d", id, req.TenantID)

	code, err := s.toValidatedDomain(req, id)
	if err != nil {
		s.logger.Warn("Update: validation failed for discount id=%d: %v", id, err)
		return err
	}

	if err := s.discountRepo.Update(ctx, code); err != nil {
		switch {
		case errors.Is(err, discountRepo.ErrDiscountNotFound):
			s.logger.Warn("Update: discount id=%d not found for tenant=%d", id, req.TenantID)
			return ErrDiscountNotFound
		case errors.Is(err, discountRepo.ErrCodeTaken):
			s.logger.Warn("Update: code %q already exists for tenant=%d", req.Code, req.TenantID)
			return ErrCodeTaken
		default:
			s.logger.Error("Update: repository error for discount id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: updated discount id=%d for tenant=%d", id, req.TenantID)
	return nil
}

// Delete удаляет промокод тенанта.
// Бронирования, созданные с этим кодом, сохраняют снимок скидки.
func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	s.logger.Info("Delete: deleting discount id=%d for tenant=%d", id, tenantID)

	if err := s.discountRepo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, discountRepo.ErrDiscountNotFound) {
			s.logger.Warn("Delete: discount id=%d not found for tenant=%d", id, tenantID)
			return ErrDiscountNotFound
		}
		s.logger.Error("Delete: repository error for discount id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted discount id=%d for tenant=%d", id, tenantID)
	return nil
}

// toValidatedDomain конвертирует и валидирует запрос
func (s *Service) toValidatedDomain(req *models.SaveDiscountRequest, id int64) (*domain.DiscountCode, error) {
	if domain.NormalizeCode(req.Code) == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if len(req.Code) > domain.MaxDiscountCodeLength {
		return nil, fmt.Errorf("%w: code must not exceed %d characters", ErrInvalidInput, domain.MaxDiscountCodeLength)
	}

	switch domain.DiscountType(req.Type) {
	case domain.DiscountTypePercentage:
		if req.Value <= 0 || req.Value > 100 {
			return nil, fmt.Errorf("%w: percentage value must be in (0, 100]", ErrInvalidInput)
		}
	case domain.DiscountTypeFixedAmount:
		if req.Amount <= 0 {
			return nil, fmt.Errorf("%w: fixed amount must be positive", ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, req.Type)
	}

	switch domain.DiscountStatus(req.Status) {
	case domain.DiscountStatusActive, domain.DiscountStatusInactive:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if req.UsageLimit != nil && *req.UsageLimit < 1 {
		return nil, fmt.Errorf("%w: usage limit must be at least 1", ErrInvalidInput)
	}

	code, err := req.ToDomain(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expiry date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	return code, nil
}
