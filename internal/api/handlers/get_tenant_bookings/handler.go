package get_tenant_bookings

import (
	"errors"
	"net/http"

	"github.com/nordbooking/NB-BookingCore/internal/api/handlers"
	"github.com/nordbooking/NB-BookingCore/internal/api/middleware"
	"github.com/nordbooking/NB-BookingCore/internal/service/bookings"
)

const (
	msgInvalidQuery = "некорректные параметры фильтрации"
)

var (
	errInvalidServiceID = errors.New("invalid serviceId query parameter")
	errInvalidDate      = errors.New("invalid date query parameter")
	errInvalidBool      = errors.New("invalid boolean query parameter")
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantID(r)

	req, err := ParseQuery(tenantID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: tenant_id=%d: %v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetTenantBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: tenant_id=%d: %v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
