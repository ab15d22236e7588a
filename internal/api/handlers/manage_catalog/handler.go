package manage_catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nordbooking/NB-BookingCore/internal/api/handlers"
	"github.com/nordbooking/NB-BookingCore/internal/api/middleware"
	"github.com/nordbooking/NB-BookingCore/internal/service/catalog"
	"github.com/nordbooking/NB-BookingCore/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidOptionID    = "некорректный ID опции"
	msgServiceNotFound    = "услуга не найдена"
	msgOptionNotFound     = "опция услуги не найдена"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreateService POST /api/v1/services
func (h *Handler) HandleCreateService(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	var req models.SaveServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		h.respondCatalogError(w, "POST /services", tenantID, err)
		return
	}

	h.logger.Info("POST /services - Service created: id=%d, tenant_id=%d", result.ID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGetService GET /api/v1/services/{serviceId}
func (h *Handler) HandleGetService(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	serviceID, ok := h.pathID(w, r, "serviceId", msgInvalidServiceID)
	if !ok {
		return
	}

	result, err := h.service.GetService(r.Context(), tenantID, serviceID)
	if err != nil {
		h.respondCatalogError(w, "GET /services/{id}", tenantID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleListServices GET /api/v1/services?includeInactive=true
func (h *Handler) HandleListServices(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	result, err := h.service.ListServices(r.Context(), tenantID, includeInactive)
	if err != nil {
		h.respondCatalogError(w, "GET /services", tenantID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdateService PUT /api/v1/services/{serviceId}
func (h *Handler) HandleUpdateService(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	serviceID, ok := h.pathID(w, r, "serviceId", msgInvalidServiceID)
	if !ok {
		return
	}

	var req models.SaveServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	if err := h.service.UpdateService(r.Context(), serviceID, &req); err != nil {
		h.respondCatalogError(w, "PUT /services/{id}", tenantID, err)
		return
	}

	h.logger.Info("PUT /services/{id} - Service updated: id=%d, tenant_id=%d", serviceID, tenantID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteService DELETE /api/v1/services/{serviceId}
func (h *Handler) HandleDeleteService(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	serviceID, ok := h.pathID(w, r, "serviceId", msgInvalidServiceID)
	if !ok {
		return
	}

	if err := h.service.DeleteService(r.Context(), tenantID, serviceID); err != nil {
		h.respondCatalogError(w, "DELETE /services/{id}", tenantID, err)
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted: id=%d, tenant_id=%d", serviceID, tenantID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateOption POST /api/v1/services/{serviceId}/options
func (h *Handler) HandleCreateOption(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	serviceID, ok := h.pathID(w, r, "serviceId", msgInvalidServiceID)
	if !ok {
		return
	}

	var req models.SaveOptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/options - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ServiceID = serviceID

	result, err := h.service.CreateOption(r.Context(), tenantID, &req)
	if err != nil {
		h.respondCatalogError(w, "POST /services/{id}/options", tenantID, err)
		return
	}

	h.logger.Info("POST /services/{id}/options - Option created: id=%d, service_id=%d, tenant_id=%d",
		result.ID, serviceID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdateOption PUT /api/v1/services/{serviceId}/options/{optionId}
func (h *Handler) HandleUpdateOption(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	serviceID, ok := h.pathID(w, r, "serviceId", msgInvalidServiceID)
	if !ok {
		return
	}
	optionID, ok := h.pathID(w, r, "optionId", msgInvalidOptionID)
	if !ok {
		return
	}

	var req models.SaveOptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id}/options/{optionId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ServiceID = serviceID

	if err := h.service.UpdateOption(r.Context(), tenantID, optionID, &req); err != nil {
		h.respondCatalogError(w, "PUT /services/{id}/options/{optionId}", tenantID, err)
		return
	}

	h.logger.Info("PUT /services/{id}/options/{optionId} - Option updated: id=%d, tenant_id=%d", optionID, tenantID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteOption DELETE /api/v1/services/{serviceId}/options/{optionId}
func (h *Handler) HandleDeleteOption(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	serviceID, ok := h.pathID(w, r, "serviceId", msgInvalidServiceID)
	if !ok {
		return
	}
	optionID, ok := h.pathID(w, r, "optionId", msgInvalidOptionID)
	if !ok {
		return
	}

	if err := h.service.DeleteOption(r.Context(), tenantID, serviceID, optionID); err != nil {
		h.respondCatalogError(w, "DELETE /services/{id}/options/{optionId}", tenantID, err)
		return
	}

	h.logger.Info("DELETE /services/{id}/options/{optionId} - Option deleted: id=%d, tenant_id=%d",
		optionID, tenantID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name, msg string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msg)
		return 0, false
	}
	return id, true
}

// respondCatalogError транслирует ошибки сервиса каталога в HTTP статусы
func (h *Handler) respondCatalogError(w http.ResponseWriter, op string, tenantID int64, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, catalog.ErrOptionNotFound):
		h.logger.Warn("%s - Option not found: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondNotFound(w, msgOptionNotFound)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondInternalError(w)
	}
}
