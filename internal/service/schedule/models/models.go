package models

import (
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

// Request модели

// SaveRecurringSlotRequest запрос на создание или обновление слота
// недельного шаблона
type SaveRecurringSlotRequest struct {
	TenantID  int64  `json:"tenantId"`
	DayOfWeek int    `json:"dayOfWeek"` // 0=Вс .. 6=Сб
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
	Capacity  int    `json:"capacity"`
	IsActive  bool   `json:"isActive"`
}

// ToDomain конвертирует request в domain модель
func (r *SaveRecurringSlotRequest) ToDomain(slotID int64) *domain.RecurringSlot {
	return &domain.RecurringSlot{
		ID:        slotID,
		TenantID:  r.TenantID,
		DayOfWeek: r.DayOfWeek,
		StartTime: types.TimeString(r.StartTime),
		EndTime:   types.TimeString(r.EndTime),
		Capacity:  r.Capacity,
		IsActive:  r.IsActive,
	}
}

// SaveDateOverrideRequest запрос на создание или замену переопределения даты.
// При isUnavailable поля времени и вместимости игнорируются.
type SaveDateOverrideRequest struct {
	TenantID      int64  `json:"tenantId"`
	Date          string `json:"date"` // "2025-10-15"
	IsUnavailable bool   `json:"isUnavailable"`
	StartTime     string `json:"startTime,omitempty"`
	EndTime       string `json:"endTime,omitempty"`
	Capacity      int    `json:"capacity,omitempty"`
}

// SetDayStatusRequest запрос на массовое включение/выключение слотов дня недели
type SetDayStatusRequest struct {
	TenantID  int64 `json:"tenantId"`
	DayOfWeek int   `json:"dayOfWeek"`
	IsActive  bool  `json:"isActive"`
}

// Response модели

// RecurringSlotResponse слот недельного шаблона
type RecurringSlotResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Capacity  int    `json:"capacity"`
	IsActive  bool   `json:"isActive"`
}

// DateOverrideResponse переопределение даты
type DateOverrideResponse struct {
	ID            int64  `json:"id"`
	Date          string `json:"date"`
	IsUnavailable bool   `json:"isUnavailable"`
	StartTime     string `json:"startTime,omitempty"`
	EndTime       string `json:"endTime,omitempty"`
	Capacity      int    `json:"capacity,omitempty"`
}

// ScheduleResponse недельный шаблон и переопределения периода
type ScheduleResponse struct {
	RecurringSlots []RecurringSlotResponse `json:"recurringSlots"`
	DateOverrides  []DateOverrideResponse  `json:"dateOverrides"`
}

// Методы конвертации

// FromDomainRecurringSlot конвертирует domain модель в DTO
func FromDomainRecurringSlot(slot *domain.RecurringSlot) *RecurringSlotResponse {
	if slot == nil {
		return nil
	}
	return &RecurringSlotResponse{
		ID:        slot.ID,
		DayOfWeek: slot.DayOfWeek,
		StartTime: slot.StartTime.String(),
		EndTime:   slot.EndTime.String(),
		Capacity:  slot.Capacity,
		IsActive:  slot.IsActive,
	}
}

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(override *domain.DateOverride) *DateOverrideResponse {
	if override == nil {
		return nil
	}
	return &DateOverrideResponse{
		ID:            override.ID,
		Date:          override.Date.Format(domain.DateFormat),
		IsUnavailable: override.IsUnavailable,
		StartTime:     override.StartTime.String(),
		EndTime:       override.EndTime.String(),
		Capacity:      override.Capacity,
	}
}

// FromDomainSchedule собирает ответ из шаблона и переопределений
func FromDomainSchedule(slots []*domain.RecurringSlot, overrides []*domain.DateOverride) *ScheduleResponse {
	resp := &ScheduleResponse{
		RecurringSlots: make([]RecurringSlotResponse, 0, len(slots)),
		DateOverrides:  make([]DateOverrideResponse, 0, len(overrides)),
	}
	for _, slot := range slots {
		resp.RecurringSlots = append(resp.RecurringSlots, *FromDomainRecurringSlot(slot))
	}
	for _, override := range overrides {
		resp.DateOverrides = append(resp.DateOverrides, *FromDomainOverride(override))
	}
	return resp
}

// ParseDate парсит дату формата YYYY-MM-DD в полночь UTC
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOnly(parsed), nil
}
