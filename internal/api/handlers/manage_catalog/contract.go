package manage_catalog

import (
	"context"

	"github.com/nordbooking/NB-BookingCore/internal/service/catalog/models"
)

type CatalogService interface {
	CreateService(ctx context.Context, req *models.SaveServiceRequest) (*models.ServiceResponse, error)
	GetService(ctx context.Context, tenantID, serviceID int64) (*models.ServiceResponse, error)
	ListServices(ctx context.Context, tenantID int64, includeInactive bool) (*models.ServiceListResponse, error)
	UpdateService(ctx context.Context, serviceID int64, req *models.SaveServiceRequest) error
	DeleteService(ctx context.Context, tenantID, serviceID int64) error

	CreateOption(ctx context.Context, tenantID int64, req *models.SaveOptionRequest) (*models.OptionResponse, error)
	UpdateOption(ctx context.Context, tenantID, optionID int64, req *models.SaveOptionRequest) error
	DeleteOption(ctx context.Context, tenantID, serviceID, optionID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
