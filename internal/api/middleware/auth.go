package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nordbooking/NB-BookingCore/internal/api/handlers"
)

type contextKey string

const tenantIDKey contextKey = "tenantID"

// HeaderTenantID заголовок с ID тенанта, проставляется API-шлюзом
// после проверки сессии кабинета
const HeaderTenantID = "X-Tenant-ID"

// Auth проверяет наличие заголовка X-Tenant-ID и кладёт ID тенанта
// в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderTenantID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Tenant-ID")
			return
		}

		tenantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-Tenant-ID")
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TenantID возвращает ID тенанта из контекста запроса.
// Второй результат false означает, что запрос прошёл мимо Auth.
func TenantID(r *http.Request) (int64, bool) {
	tenantID, ok := r.Context().Value(tenantIDKey).(int64)
	return tenantID, ok
}
