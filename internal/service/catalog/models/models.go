package models

import (
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

// Request модели

// SaveServiceRequest запрос на создание или обновление услуги
type SaveServiceRequest struct {
	TenantID        int64   `json:"tenantId"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	BasePrice       int64   `json:"basePrice"` // минорные единицы валюты
	DurationMinutes int     `json:"durationMinutes"`
	IsActive        bool    `json:"isActive"`
}

// ToDomain конвертирует request в domain модель
func (r *SaveServiceRequest) ToDomain(serviceID int64) *domain.Service {
	return &domain.Service{
		ID:              serviceID,
		TenantID:        r.TenantID,
		Name:            r.Name,
		Description:     r.Description,
		BasePrice:       money.Money(r.BasePrice),
		DurationMinutes: r.DurationMinutes,
		IsActive:        r.IsActive,
	}
}

// OptionChoiceRequest вариант select/radio опции
type OptionChoiceRequest struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	PriceAdjust *int64 `json:"priceAdjust,omitempty"` // минорные единицы
}

// SqmRangeRequest диапазон площади с собственной ценой за единицу
type SqmRangeRequest struct {
	From         float64  `json:"from"`
	To           *float64 `json:"to,omitempty"` // nil = без верхней границы
	PricePerUnit int64    `json:"pricePerUnit"` // минорные единицы
}

// SaveOptionRequest запрос на создание или обновление опции услуги
type SaveOptionRequest struct {
	ServiceID        int64                 `json:"serviceId"`
	Name             string                `json:"name"`
	Type             string                `json:"type"`
	IsRequired       bool                  `json:"isRequired"`
	PriceImpactType  string                `json:"priceImpactType"`
	PriceImpactValue int64                 `json:"priceImpactValue,omitempty"` // минорные единицы
	PercentValue     float64               `json:"percentValue,omitempty"`
	SortOrder        int                   `json:"sortOrder"`
	Choices          []OptionChoiceRequest `json:"choices,omitempty"`
	SqmRanges        []SqmRangeRequest     `json:"sqmRanges,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *SaveOptionRequest) ToDomain(optionID int64) *domain.Option {
	option := &domain.Option{
		ID:               optionID,
		ServiceID:        r.ServiceID,
		Name:             r.Name,
		Type:             domain.OptionType(r.Type),
		IsRequired:       r.IsRequired,
		PriceImpactType:  domain.PriceImpactType(r.PriceImpactType),
		PriceImpactValue: money.Money(r.PriceImpactValue),
		PercentValue:     r.PercentValue,
		SortOrder:        r.SortOrder,
	}

	for _, c := range r.Choices {
		choice := domain.OptionChoice{Value: c.Value, Label: c.Label}
		if c.PriceAdjust != nil {
			adjust := money.Money(*c.PriceAdjust)
			choice.PriceAdjust = &adjust
		}
		option.Choices = append(option.Choices, choice)
	}

	for _, sr := range r.SqmRanges {
		option.SqmRanges = append(option.SqmRanges, domain.SqmRange{
			From:         sr.From,
			To:           sr.To,
			PricePerUnit: money.Money(sr.PricePerUnit),
		})
	}

	return option
}

// Response модели

// OptionChoiceResponse вариант select/radio опции
type OptionChoiceResponse struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	PriceAdjust *int64 `json:"priceAdjust,omitempty"`
}

// SqmRangeResponse диапазон площади
type SqmRangeResponse struct {
	From         float64  `json:"from"`
	To           *float64 `json:"to,omitempty"`
	PricePerUnit int64    `json:"pricePerUnit"`
}

// OptionResponse опция услуги
type OptionResponse struct {
	ID               int64                  `json:"id"`
	ServiceID        int64                  `json:"serviceId"`
	Name             string                 `json:"name"`
	Type             string                 `json:"type"`
	IsRequired       bool                   `json:"isRequired"`
	PriceImpactType  string                 `json:"priceImpactType"`
	PriceImpactValue int64                  `json:"priceImpactValue,omitempty"`
	PercentValue     float64                `json:"percentValue,omitempty"`
	SortOrder        int                    `json:"sortOrder"`
	Choices          []OptionChoiceResponse `json:"choices,omitempty"`
	SqmRanges        []SqmRangeResponse     `json:"sqmRanges,omitempty"`
}

// ServiceResponse услуга с опциями
type ServiceResponse struct {
	ID              int64            `json:"id"`
	TenantID        int64            `json:"tenantId"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	BasePrice       int64            `json:"basePrice"`
	DurationMinutes int              `json:"durationMinutes"`
	IsActive        bool             `json:"isActive"`
	Options         []OptionResponse `json:"options,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainOption конвертирует domain модель в DTO
func FromDomainOption(o *domain.Option) *OptionResponse {
	if o == nil {
		return nil
	}

	resp := &OptionResponse{
		ID:               o.ID,
		ServiceID:        o.ServiceID,
		Name:             o.Name,
		Type:             string(o.Type),
		IsRequired:       o.IsRequired,
		PriceImpactType:  string(o.PriceImpactType),
		PriceImpactValue: int64(o.PriceImpactValue),
		PercentValue:     o.PercentValue,
		SortOrder:        o.SortOrder,
	}

	for _, c := range o.Choices {
		choice := OptionChoiceResponse{Value: c.Value, Label: c.Label}
		if c.PriceAdjust != nil {
			adjust := int64(*c.PriceAdjust)
			choice.PriceAdjust = &adjust
		}
		resp.Choices = append(resp.Choices, choice)
	}

	for _, sr := range o.SqmRanges {
		resp.SqmRanges = append(resp.SqmRanges, SqmRangeResponse{
			From:         sr.From,
			To:           sr.To,
			PricePerUnit: int64(sr.PricePerUnit),
		})
	}

	return resp
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	resp := &ServiceResponse{
		ID:              s.ID,
		TenantID:        s.TenantID,
		Name:            s.Name,
		Description:     s.Description,
		BasePrice:       int64(s.BasePrice),
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}

	for i := range s.Options {
		if optResp := FromDomainOption(&s.Options[i]); optResp != nil {
			resp.Options = append(resp.Options, *optResp)
		}
	}

	return resp
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		if dto := FromDomainService(s); dto != nil {
			resp.Services = append(resp.Services, *dto)
		}
	}
	return resp
}
