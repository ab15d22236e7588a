package get_tenant_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/internal/service/bookings/models"
	"github.com/nordbooking/NB-BookingCore/pkg/ptr"
)

// ParseQuery разбирает query-параметры фильтрации списка бронирований.
// Поддерживаются serviceId, startDate, endDate (YYYY-MM-DD), status,
// includeInactive. Некорректное значение любого параметра - ошибка.
func ParseQuery(tenantID int64, query url.Values) (*models.GetTenantBookingsRequest, error) {
	req := &models.GetTenantBookingsRequest{TenantID: tenantID}

	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || serviceID <= 0 {
			return nil, errInvalidServiceID
		}
		req.ServiceID = &serviceID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errInvalidDate
		}
		req.StartDate = ptr.Ptr(startDate)
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errInvalidDate
		}
		req.EndDate = ptr.Ptr(endDate)
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = ptr.Ptr(raw)
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errInvalidBool
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
