package domain

import (
	"time"

	"github.com/nordbooking/NB-BookingCore/pkg/money"
	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusInProgress          BookingStatus = "in_progress"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByCustomer BookingStatus = "cancelled_by_customer"
	StatusCancelledByTenant   BookingStatus = "cancelled_by_tenant"
	StatusNoShow              BookingStatus = "no_show"
)

// Booking represents a customer's booking of a tenant service.
// A booking consumes one capacity unit of its time slot on BookingDate.
type Booking struct {
	ID              int64
	TenantID        int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Frequency       Frequency
	Status          BookingStatus

	// Customer contact details captured from the public booking form
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Address       *string

	// Denormalized pricing snapshot for history; the live catalog may
	// change after the booking is made
	ServiceName    string
	Subtotal       money.Money
	DiscountAmount money.Money
	FinalTotal     money.Money
	DiscountCodeID *int64
	Notes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still consumes slot capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByCustomer &&
		b.Status != StatusCancelledByTenant &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByCustomer || b.Status == StatusCancelledByTenant
}

// TenantBookingsFilter фильтр для получения бронирований тенанта
type TenantBookingsFilter struct {
	TenantID        int64          // Обязательный параметр
	ServiceID       *int64         // Фильтр по услуге (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show
}
