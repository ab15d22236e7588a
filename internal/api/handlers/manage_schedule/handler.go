package manage_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/nordbooking/NB-BookingCore/internal/api/handlers"
	"github.com/nordbooking/NB-BookingCore/internal/api/middleware"
	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/internal/service/schedule"
	"github.com/nordbooking/NB-BookingCore/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDayOfWeek   = "некорректный день недели, ожидается 0..6"
	msgInvalidPeriod      = "некорректный период расписания"
	msgSlotNotFound       = "слот не найден"
	msgOverrideNotFound   = "переопределение даты не найдено"
	msgInvalidTimeRange   = "время начала должно быть раньше времени окончания"
	msgInvalidCapacity    = "недопустимая вместимость слота"
	msgInvalidInput       = "некорректные параметры запроса"
)

// Период расписания по умолчанию, когда границы не заданы в query.
const defaultScheduleRangeDays = 30

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGetSchedule GET /api/v1/schedule?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	from := domain.DateOnly(time.Now())
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		from = parsed
	}

	to := from.AddDate(0, 0, defaultScheduleRangeDays)
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		to = parsed
	}

	if to.Before(from) {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), tenantID, from, to)
	if err != nil {
		h.logger.Error("GET /schedule - Failed to get schedule: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreateRecurringSlot POST /api/v1/schedule/slots
func (h *Handler) HandleCreateRecurringSlot(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	var req models.SaveRecurringSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.CreateRecurringSlot(r.Context(), &req)
	if err != nil {
		h.respondScheduleError(w, "POST /schedule/slots", tenantID, err)
		return
	}

	h.logger.Info("POST /schedule/slots - Slot created: id=%d, tenant_id=%d", result.ID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdateRecurringSlot PUT /api/v1/schedule/slots/{slotId}
func (h *Handler) HandleUpdateRecurringSlot(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.SaveRecurringSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	if err := h.service.UpdateRecurringSlot(r.Context(), slotID, &req); err != nil {
		h.respondScheduleError(w, "PUT /schedule/slots/{id}", tenantID, err)
		return
	}

	h.logger.Info("PUT /schedule/slots/{id} - Slot updated: id=%d, tenant_id=%d", slotID, tenantID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteRecurringSlot DELETE /api/v1/schedule/slots/{slotId}
func (h *Handler) HandleDeleteRecurringSlot(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.DeleteRecurringSlot(r.Context(), tenantID, slotID); err != nil {
		h.respondScheduleError(w, "DELETE /schedule/slots/{id}", tenantID, err)
		return
	}

	h.logger.Info("DELETE /schedule/slots/{id} - Slot deleted: id=%d, tenant_id=%d", slotID, tenantID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetDayStatus PUT /api/v1/schedule/days/{dayOfWeek}
func (h *Handler) HandleSetDayStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	dayOfWeek, err := strconv.Atoi(mux.Vars(r)["dayOfWeek"])
	if err != nil || dayOfWeek < 0 || dayOfWeek > 6 {
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req models.SetDayStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/days/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID
	req.DayOfWeek = dayOfWeek

	if err := h.service.SetDayStatus(r.Context(), &req); err != nil {
		h.respondScheduleError(w, "PUT /schedule/days/{day}", tenantID, err)
		return
	}

	h.logger.Info("PUT /schedule/days/{day} - Day status updated: day=%d, active=%t, tenant_id=%d",
		dayOfWeek, req.IsActive, tenantID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSaveDateOverride PUT /api/v1/schedule/overrides
func (h *Handler) HandleSaveDateOverride(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	var req models.SaveDateOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.SaveDateOverride(r.Context(), &req)
	if err != nil {
		h.respondScheduleError(w, "PUT /schedule/overrides", tenantID, err)
		return
	}

	h.logger.Info("PUT /schedule/overrides - Override saved: date=%s, tenant_id=%d", result.Date, tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeleteDateOverride DELETE /api/v1/schedule/overrides/{date}
func (h *Handler) HandleDeleteDateOverride(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	rawDate := mux.Vars(r)["date"]

	if err := h.service.DeleteDateOverride(r.Context(), tenantID, rawDate); err != nil {
		h.respondScheduleError(w, "DELETE /schedule/overrides/{date}", tenantID, err)
		return
	}

	h.logger.Info("DELETE /schedule/overrides/{date} - Override deleted: date=%s, tenant_id=%d", rawDate, tenantID)
	w.WriteHeader(http.StatusNoContent)
}

// respondScheduleError транслирует ошибки сервиса расписания в HTTP статусы
func (h *Handler) respondScheduleError(w http.ResponseWriter, op string, tenantID int64, err error) {
	switch {
	case errors.Is(err, schedule.ErrSlotNotFound):
		h.logger.Warn("%s - Slot not found: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondNotFound(w, msgSlotNotFound)

	case errors.Is(err, schedule.ErrOverrideNotFound):
		h.logger.Warn("%s - Override not found: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondNotFound(w, msgOverrideNotFound)

	case errors.Is(err, schedule.ErrInvalidTimeRange):
		h.logger.Warn("%s - Invalid time range: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)

	case errors.Is(err, schedule.ErrInvalidCapacity):
		h.logger.Warn("%s - Invalid capacity: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidCapacity)

	case errors.Is(err, schedule.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: tenant_id=%d: %v", op, tenantID, err)
		handlers.RespondInternalError(w)
	}
}
