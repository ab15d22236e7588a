package compute_pricing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nordbooking/NB-BookingCore/internal/api/handlers"
	computePricing "github.com/nordbooking/NB-BookingCore/internal/usecase/compute_pricing"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTenantID    = "некорректный ID тенанта"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidOptions     = "некорректный выбор опций услуги"
	msgDiscountInvalid    = "промокод не может быть применён"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase ComputePricingUseCase
	logger  Logger
}

func NewHandler(useCase ComputePricingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/pricing
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil || tenantID <= 0 {
		h.logger.Warn("POST /pricing - Invalid tenant ID: %v", mux.Vars(r)["tenantId"])
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req ComputePricingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, computePricing.ErrServiceNotFound):
			h.logger.Warn("POST /pricing - Service not found: tenant_id=%d, service_id=%d", tenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, computePricing.ErrValidation):
			h.logger.Warn("POST /pricing - Invalid options: tenant_id=%d, service_id=%d: %v", tenantID, req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidOptions)

		case errors.Is(err, computePricing.ErrDiscountInvalid):
			h.logger.Warn("POST /pricing - Discount rejected: tenant_id=%d: %v", tenantID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDiscountInvalid)

		case errors.Is(err, computePricing.ErrInvalidInput):
			h.logger.Warn("POST /pricing - Invalid input: tenant_id=%d: %v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /pricing - Failed to compute pricing: tenant_id=%d, service_id=%d, error=%v",
				tenantID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pricing - Pricing computed: tenant_id=%d, service_id=%d, total=%d",
		tenantID, req.ServiceID, result.FinalTotal)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
