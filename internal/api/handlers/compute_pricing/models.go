package compute_pricing

import (
	"github.com/nordbooking/NB-BookingCore/internal/domain"
	computePricing "github.com/nordbooking/NB-BookingCore/internal/usecase/compute_pricing"
)

// OptionSelection выбранное значение опции из формы бронирования
type OptionSelection struct {
	OptionID int64  `json:"optionId"`
	Value    string `json:"value"`
}

// ComputePricingRequest HTTP request model
type ComputePricingRequest struct {
	ServiceID    int64             `json:"serviceId"`
	Options      []OptionSelection `json:"options,omitempty"`
	Frequency    string            `json:"frequency"`
	DiscountCode *string           `json:"discountCode,omitempty"`
}

// OptionLineResponse вклад одной опции в цену
type OptionLineResponse struct {
	OptionID   int64  `json:"optionId"`
	OptionName string `json:"optionName"`
	Amount     int64  `json:"amount"` // минорные единицы валюты
}

// PricingResponse HTTP response model с детализацией расчёта
type PricingResponse struct {
	TenantID  int64 `json:"tenantId"`
	ServiceID int64 `json:"serviceId"`

	BasePrice int64                `json:"basePrice"`
	Options   []OptionLineResponse `json:"options"`
	Subtotal  int64                `json:"subtotal"`

	FrequencyDiscount int64   `json:"frequencyDiscount"`
	CodeDiscount      int64   `json:"codeDiscount"`
	DiscountAmount    int64   `json:"discountAmount"`
	AppliedCode       *string `json:"appliedCode,omitempty"`

	FinalTotal int64 `json:"finalTotal"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ComputePricingRequest) ToUseCaseRequest(tenantID int64) *computePricing.Request {
	options := make([]domain.ConfiguredOption, len(r.Options))
	for i, opt := range r.Options {
		options[i] = domain.ConfiguredOption{
			OptionID:      opt.OptionID,
			SelectedValue: opt.Value,
		}
	}

	return &computePricing.Request{
		TenantID:     tenantID,
		ServiceID:    r.ServiceID,
		Options:      options,
		Frequency:    domain.Frequency(r.Frequency),
		DiscountCode: r.DiscountCode,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *computePricing.Response) *PricingResponse {
	options := make([]OptionLineResponse, len(resp.Options))
	for i, opt := range resp.Options {
		options[i] = OptionLineResponse{
			OptionID:   opt.OptionID,
			OptionName: opt.OptionName,
			Amount:     int64(opt.Amount),
		}
	}

	return &PricingResponse{
		TenantID:          resp.TenantID,
		ServiceID:         resp.ServiceID,
		BasePrice:         int64(resp.BasePrice),
		Options:           options,
		Subtotal:          int64(resp.Subtotal),
		FrequencyDiscount: int64(resp.FrequencyDiscount),
		CodeDiscount:      int64(resp.CodeDiscount),
		DiscountAmount:    int64(resp.DiscountAmount),
		AppliedCode:       resp.AppliedCode,
		FinalTotal:        int64(resp.FinalTotal),
	}
}
