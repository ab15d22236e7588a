package tenantservice

// Tenant модель аккаунта тенанта из TenantService
type Tenant struct {
	ID           int64  `json:"id"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	Currency     string `json:"currency"` // ISO 4217, например "SEK"
	Timezone     string `json:"timezone"` // IANA, например "Europe/Stockholm"
	IsActive     bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от TenantService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
