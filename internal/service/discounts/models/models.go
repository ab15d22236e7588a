package models

import (
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

// Request модели

// SaveDiscountRequest запрос на создание или обновление промокода
type SaveDiscountRequest struct {
	TenantID   int64   `json:"tenantId"`
	Code       string  `json:"code"`
	Type       string  `json:"type"`                 // "percentage" | "fixed_amount"
	Value      float64 `json:"value,omitempty"`      // процент для percentage
	Amount     int64   `json:"amount,omitempty"`     // минорные единицы для fixed_amount
	ExpiryDate *string `json:"expiryDate,omitempty"` // "2025-12-31"
	UsageLimit *int    `json:"usageLimit,omitempty"`
	Status     string  `json:"status"` // "active" | "inactive"
}

// ToDomain конвертирует request в domain модель
func (r *SaveDiscountRequest) ToDomain(id int64) (*domain.DiscountCode, error) {
	code := &domain.DiscountCode{
		ID:         id,
		TenantID:   r.TenantID,
		Code:       domain.NormalizeCode(r.Code),
		Type:       domain.DiscountType(r.Type),
		Value:      r.Value,
		Amount:     money.Money(r.Amount),
		UsageLimit: r.UsageLimit,
		Status:     domain.DiscountStatus(r.Status),
	}

	if r.ExpiryDate != nil && *r.ExpiryDate != "" {
		parsed, err := time.Parse(domain.DateFormat, *r.ExpiryDate)
		if err != nil {
			return nil, err
		}
		// Код действует включительно до конца указанного дня
		expiry := domain.DateOnly(parsed).Add(24*time.Hour - time.Second)
		code.ExpiryDate = &expiry
	}

	return code, nil
}

// Response модели

// DiscountResponse ответ с данными промокода
type DiscountResponse struct {
	ID         int64   `json:"id"`
	Code       string  `json:"code"`
	Type       string  `json:"type"`
	Value      float64 `json:"value,omitempty"`
	Amount     int64   `json:"amount,omitempty"`
	ExpiryDate *string `json:"expiryDate,omitempty"`
	UsageLimit *int    `json:"usageLimit,omitempty"`
	TimesUsed  int     `json:"timesUsed"`
	Status     string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DiscountListResponse ответ со списком промокодов
type DiscountListResponse struct {
	Discounts []DiscountResponse `json:"discounts"`
}

// Методы конвертации

// FromDomainDiscount конвертирует domain модель в DTO
func FromDomainDiscount(d *domain.DiscountCode) *DiscountResponse {
	if d == nil {
		return nil
	}

	resp := &DiscountResponse{
		ID:         d.ID,
		Code:       d.Code,
		Type:       string(d.Type),
		Value:      d.Value,
		Amount:     int64(d.Amount),
		UsageLimit: d.UsageLimit,
		TimesUsed:  d.TimesUsed,
		Status:     string(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}

	if d.ExpiryDate != nil {
		expiryStr := d.ExpiryDate.Format(domain.DateFormat)
		resp.ExpiryDate = &expiryStr
	}

	return resp
}

// FromDomainDiscountList конвертирует список domain моделей в DTO
func FromDomainDiscountList(discounts []*domain.DiscountCode) *DiscountListResponse {
	resp := &DiscountListResponse{
		Discounts: make([]DiscountResponse, 0, len(discounts)),
	}
	for _, d := range discounts {
		if dto := FromDomainDiscount(d); dto != nil {
			resp.Discounts = append(resp.Discounts, *dto)
		}
	}
	return resp
}
