package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	catalogRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/catalog"
	"github.com/nordbooking/NB-BookingCore/internal/service/catalog/models"
)

// Service сервис управления каталогом услуг тенанта
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// CreateService создает услугу тенанта
func (s *Service) CreateService(ctx context.Context, req *models.SaveServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service %q for tenant=%d", req.Name, req.TenantID)

	if err := s.validateService(req); err != nil {
		s.logger.Warn("CreateService: validation failed for tenant=%d: %v", req.TenantID, err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateService(ctx, req.ToDomain(0))
	if err != nil {
		s.logger.Error("CreateService: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d for tenant=%d", created.ID, req.TenantID)
	return models.FromDomainService(created), nil
}

// GetService получает услугу тенанта вместе с опциями
func (s *Service) GetService(ctx context.Context, tenantID, serviceID int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetService: fetching service id=%d for tenant=%d", serviceID, tenantID)

	service, err := s.catalogRepo.GetServiceWithOptions(ctx, tenantID, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found for tenant=%d", serviceID, tenantID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// ListServices получает услуги тенанта
func (s *Service) ListServices(ctx context.Context, tenantID int64, includeInactive bool) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching services for tenant=%d (includeInactive=%t)", tenantID, includeInactive)

	services, err := s.catalogRepo.ListServicesByTenant(ctx, tenantID, includeInactive)
	if err != nil {
		s.logger.Error("ListServices: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d services for tenant=%d", len(services), tenantID)
	return models.FromDomainServiceList(services), nil
}

// UpdateService обновляет услугу тенанта.
// Изменение базовой цены не затрагивает существующие бронирования -
// они хранят снимок цены на момент создания.
func (s *Service) UpdateService(ctx context.Context, serviceID int64, req *models.SaveServiceRequest) error {
	s.logger.Info("UpdateService: updating service id=%d for tenant=%d", serviceID, req.TenantID)

	if err := s.validateService(req); err != nil {
		s.logger.Warn("UpdateService: validation failed for service id=%d: %v", serviceID, err)
		return err
	}

	if err := s.catalogRepo.UpdateService(ctx, req.ToDomain(serviceID)); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%d not found for tenant=%d", serviceID, req.TenantID)
			return ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: updated service id=%d for tenant=%d", serviceID, req.TenantID)
	return nil
}

// DeleteService удаляет услугу тенанта вместе с опциями
func (s *Service) DeleteService(ctx context.Context, tenantID, serviceID int64) error {
	s.logger.Info("DeleteService: deleting service id=%d for tenant=%d", serviceID, tenantID)

	if err := s.catalogRepo.DeleteService(ctx, tenantID, serviceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("DeleteService: service id=%d not found for tenant=%d", serviceID, tenantID)
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: deleted service id=%d for tenant=%d", serviceID, tenantID)
	return nil
}

// CreateOption создает опцию услуги.
// Услуга должна принадлежать тенанту.
func (s *Service) CreateOption(ctx context.Context, tenantID int64, req *models.SaveOptionRequest) (*models.OptionResponse, error) {
	s.logger.Info("CreateOption: creating option %q for service=%d, tenant=%d", req.Name, req.ServiceID, tenantID)

	if err := s.checkServiceOwned(ctx, tenantID, req.ServiceID); err != nil {
		return nil, err
	}

	option := req.ToDomain(0)
	if err := s.validateOption(option); err != nil {
		s.logger.Warn("CreateOption: validation failed for service=%d: %v", req.ServiceID, err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateOption(ctx, option)
	if err != nil {
		s.logger.Error("CreateOption: repository error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: CreateOption - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOption: created option id=%d for service=%d", created.ID, req.ServiceID)
	return models.FromDomainOption(created), nil
}

// UpdateOption обновляет опцию услуги
func (s *Service) UpdateOption(ctx context.Context, tenantID, optionID int64, req *models.SaveOptionRequest) error {
	s.logger.Info("UpdateOption: updating option id=%d for service=%d, tenant=%d", optionID, req.ServiceID, tenantID)

	if err := s.checkServiceOwned(ctx, tenantID, req.ServiceID); err != nil {
		return err
	}

	option := req.ToDomain(optionID)
	if err := s.validateOption(option); err != nil {
		s.logger.Warn("UpdateOption: validation failed for option id=%d: %v", optionID, err)
		return err
	}

	if err := s.catalogRepo.UpdateOption(ctx, option); err != nil {
		if errors.Is(err, catalogRepo.ErrOptionNotFound) {
			s.logger.Warn("UpdateOption: option id=%d not found for service=%d", optionID, req.ServiceID)
			return ErrOptionNotFound
		}
		s.logger.Error("UpdateOption: repository error for option id=%d: %v", optionID, err)
		return fmt.Errorf("%w: UpdateOption - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateOption: updated option id=%d for service=%d", optionID, req.ServiceID)
	return nil
}

// DeleteOption удаляет опцию услуги
func (s *Service) DeleteOption(ctx context.Context, tenantID, serviceID, optionID int64) error {
	s.logger.Info("DeleteOption: deleting option id=%d for service=%d, tenant=%d", optionID, serviceID, tenantID)

	if err := s.checkServiceOwned(ctx, tenantID, serviceID); err != nil {
		return err
	}

	if err := s.catalogRepo.DeleteOption(ctx, serviceID, optionID); err != nil {
		if errors.Is(err, catalogRepo.ErrOptionNotFound) {
			s.logger.Warn("DeleteOption: option id=%d not found for service=%d", optionID, serviceID)
			return ErrOptionNotFound
		}
		s.logger.Error("DeleteOption: repository error for option id=%d: %v", optionID, err)
		return fmt.Errorf("%w: DeleteOption - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOption: deleted option id=%d for service=%d", optionID, serviceID)
	return nil
}

// Вспомогательные методы

// checkServiceOwned проверяет, что услуга принадлежит тенанту
func (s *Service) checkServiceOwned(ctx context.Context, tenantID, serviceID int64) error {
	_, err := s.catalogRepo.GetServiceWithOptions(ctx, tenantID, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("checkServiceOwned: service id=%d not found for tenant=%d", serviceID, tenantID)
			return ErrServiceNotFound
		}
		s.logger.Error("checkServiceOwned: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: checkServiceOwned - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) validateService(req *models.SaveServiceRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.BasePrice < 0 {
		return fmt.Errorf("%w: base price must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}

func (s *Service) validateOption(option *domain.Option) error {
	if strings.TrimSpace(option.Name) == "" {
		return fmt.Errorf("%w: option name is required", ErrInvalidInput)
	}
	if len(option.Name) > domain.MaxOptionNameLength {
		return fmt.Errorf("%w: option name must not exceed %d characters", ErrInvalidInput, domain.MaxOptionNameLength)
	}

	switch option.Type {
	case domain.OptionTypeCheckbox, domain.OptionTypeText, domain.OptionTypeTextarea,
		domain.OptionTypeSelect, domain.OptionTypeRadio,
		domain.OptionTypeQuantity, domain.OptionTypeNumber, domain.OptionTypeSqm:
	default:
		return fmt.Errorf("%w: unknown option type %q", ErrInvalidInput, option.Type)
	}

	switch option.PriceImpactType {
	case domain.PriceImpactNone, domain.PriceImpactFixed, domain.PriceImpactPercentage, domain.PriceImpactPerUnit:
	default:
		return fmt.Errorf("%w: unknown price impact type %q", ErrInvalidInput, option.PriceImpactType)
	}

	// Выборные типы обязаны иметь варианты с непустыми значениями
	if option.IsChoiceBased() {
		if len(option.Choices) == 0 {
			return fmt.Errorf("%w: %s option requires at least one choice", ErrInvalidInput, option.Type)
		}
		for _, c := range option.Choices {
			if strings.TrimSpace(c.Value) == "" {
				return fmt.Errorf("%w: choice value must not be empty", ErrInvalidInput)
			}
		}
	}

	// Диапазоны площади не должны иметь отрицательных границ
	if option.Type == domain.OptionTypeSqm {
		if len(option.SqmRanges) == 0 {
			return fmt.Errorf("%w: sqm option requires at least one range", ErrInvalidInput)
		}
		for _, r := range option.SqmRanges {
			if r.From < 0 {
				return fmt.Errorf("%w: sqm range lower bound must not be negative", ErrInvalidInput)
			}
			if r.To != nil && *r.To < r.From {
				return fmt.Errorf("%w: sqm range upper bound must not be below lower bound", ErrInvalidInput)
			}
		}
	}

	if option.PriceImpactType == domain.PriceImpactPercentage && option.PercentValue == 0 {
		return fmt.Errorf("%w: percentage impact requires a percent value", ErrInvalidInput)
	}

	return nil
}
