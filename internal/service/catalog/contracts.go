package catalog

import (
	"context"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetServiceWithOptions(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
	ListServicesByTenant(ctx context.Context, tenantID int64, includeInactive bool) ([]*domain.Service, error)
	UpdateService(ctx context.Context, service *domain.Service) error
	DeleteService(ctx context.Context, tenantID, serviceID int64) error
	CreateOption(ctx context.Context, option *domain.Option) (*domain.Option, error)
	UpdateOption(ctx context.Context, option *domain.Option) error
	DeleteOption(ctx context.Context, serviceID, optionID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
