package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nordbooking/NB-BookingCore/internal/api/handlers"
	createBooking "github.com/nordbooking/NB-BookingCore/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTenantID    = "некорректный ID тенанта"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgTenantNotFound     = "тенант не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotNotFound       = "выбранный временной слот отсутствует в расписании"
	msgSlotUnavailable    = "в выбранном слоте не осталось свободных мест"
	msgInvalidOptions     = "некорректный выбор опций услуги"
	msgDiscountInvalid    = "промокод не может быть применён"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil || tenantID <= 0 {
		h.logger.Warn("POST /bookings - Invalid tenant ID: %v", mux.Vars(r)["tenantId"])
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot full: tenant_id=%d, date=%s, start=%s",
				tenantID, req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not in schedule: tenant_id=%d, date=%s, start=%s",
				tenantID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrTenantNotFound):
			h.logger.Warn("POST /bookings - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: tenant_id=%d, service_id=%d", tenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrValidation):
			h.logger.Warn("POST /bookings - Invalid options: tenant_id=%d, service_id=%d: %v",
				tenantID, req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidOptions)

		case errors.Is(err, createBooking.ErrDiscountInvalid):
			h.logger.Warn("POST /bookings - Discount rejected: tenant_id=%d: %v", tenantID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDiscountInvalid)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: tenant_id=%d: %v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: tenant_id=%d, service_id=%d, error=%v",
				tenantID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, tenant_id=%d, total=%d",
		result.Booking.ID, tenantID, result.Booking.FinalTotal)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
