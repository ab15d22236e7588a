package compute_pricing

import (
	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

// Request модель запроса на расчёт цены
type Request struct {
	TenantID     int64                     // ID тенанта
	ServiceID    int64                     // ID услуги
	Options      []domain.ConfiguredOption // Выбранные опции (сырые значения формы)
	Frequency    domain.Frequency          // Частота бронирования
	DiscountCode *string                   // Промокод (опционально)
}

// Response модель ответа с детализацией расчёта
type Response struct {
	TenantID  int64
	ServiceID int64

	BasePrice money.Money
	Options   []domain.OptionContribution
	Subtotal  money.Money

	FrequencyDiscount money.Money
	CodeDiscount      money.Money
	DiscountAmount    money.Money
	AppliedCode       *string

	FinalTotal money.Money
}

// fromResult конвертирует domain.PricingResult в ответ usecase
func fromResult(tenantID, serviceID int64, result *domain.PricingResult) *Response {
	return &Response{
		TenantID:          tenantID,
		ServiceID:         serviceID,
		BasePrice:         result.BasePrice,
		Options:           result.Options,
		Subtotal:          result.Subtotal,
		FrequencyDiscount: result.FrequencyDiscount,
		CodeDiscount:      result.CodeDiscount,
		DiscountAmount:    result.DiscountAmount,
		AppliedCode:       result.AppliedCode,
		FinalTotal:        result.FinalTotal,
	}
}
