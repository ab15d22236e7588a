package compute_pricing

import (
	"context"

	computePricing "github.com/nordbooking/NB-BookingCore/internal/usecase/compute_pricing"
)

type ComputePricingUseCase interface {
	Execute(ctx context.Context, req *computePricing.Request) (*computePricing.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
