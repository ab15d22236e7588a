package manage_discounts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nordbooking/NB-BookingCore/internal/api/handlers"
	"github.com/nordbooking/NB-BookingCore/internal/api/middleware"
	"github.com/nordbooking/NB-BookingCore/internal/service/discounts"
	"github.com/nordbooking/NB-BookingCore/internal/service/discounts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDiscountID  = "некорректный ID промокода"
	msgDiscountNotFound   = "промокод не найден"
	msgCodeTaken          = "промокод с таким кодом уже существует"
	msgInvalidInput       = "некорректные параметры промокода"
)

type Handler struct {
	service DiscountsService
	logger  Logger
}

func NewHandler(service DiscountsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/discounts
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	var req models.SaveDiscountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /discounts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondDiscountError(w, "POST /discounts", tenantID, err)
		return
	}

	h.logger.Info("POST /discounts - Discount created: id=%d, code=%s, tenant_id=%d",
		result.ID, result.Code, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGet GET /api/v1/discounts/{discountId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	discountID, err := strconv.ParseInt(mux.Vars(r)["discountId"], 10, 64)
	if err != nil || discountID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidDiscountID)
		return
	}

	result, err := h.service.GetByID(r.Context(), tenantID, discountID)
	if err != nil {
		h.respondDiscountError(w, "GET /discounts/{id}", tenantID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/discounts
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	result, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		h.respondDiscountError(w, "GET /discounts", tenantID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/discounts/{discountId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	discountID, err := strconv.ParseInt(mux.Vars(r)["discountId"], 10, 64)
	if err != nil || discountID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidDiscountID)
		return
	}

	var req models.SaveDiscountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /discounts/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	if err := h.service.Update(r.Context(), discountID, &req); err != nil {
		h.respondDiscountError(w, "PUT /discounts/{id}", tenantID, err)
		return
	}

	h.logger.Info("PUT /discounts/{id} - Discount updated: id=%d, tenant_id=%d", discountID, tenantID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete DELETE /api/v1/discounts/{discountId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	discountID, err := strconv.ParseInt(mux.Vars(r)["discountId"], 10, 64)
	if err != nil || discountID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidDiscountID)
		return
	}

	if err := h.service.Delete(r.Context(), tenantID, discountID); err != nil {
		h.respondDiscountError(w, "DELETE /discounts/{id}", tenantID, err)
		return
	}

	h.logger.Info("DELETE /discounts/{id} - Discount deleted: id=%d, tenant_id=%d", discountID, tenantID)
	w.WriteHeader(http.StatusNoContent)
}

// respondDiscountError транслирует ошибки сервиса промокодов в HTTP статусы
func (h *Handler) respondDiscountError(w http.ResponseWriter, op string, tenantID int64, err error) {
	switch {
	case errors.Is(err, discounts.ErrDiscountNotFound):
		h.logger.Warn("%s - Discount not found: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondNotFound(w, msgDiscountNotFound)

	case errors.Is(err, discounts.ErrCodeTaken):
		h.logger.Warn("%s - Code taken: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondError(w, http.StatusConflict, msgCodeTaken)

	case errors.Is(err, discounts.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondInternalError(w)
	}
}
