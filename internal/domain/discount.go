package domain

import (
	"strings"
	"time"

	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

// DiscountType represents how a discount code reduces the subtotal
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

// DiscountStatus represents the lifecycle status of a discount code
type DiscountStatus string

const (
	DiscountStatusActive   DiscountStatus = "active"
	DiscountStatusInactive DiscountStatus = "inactive"
)

// DiscountCode represents a tenant-created discount code.
// Codes are unique per tenant, matched case-insensitively.
// TimesUsed is incremented only on successful booking creation, never decremented.
type DiscountCode struct {
	ID         int64
	TenantID   int64
	Code       string
	Type       DiscountType
	Value      float64      // percent for percentage type
	Amount     money.Money  // minor units for fixed_amount type
	ExpiryDate *time.Time   // nil = never expires
	UsageLimit *int         // nil = unlimited
	TimesUsed  int
	Status     DiscountStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeCode returns the canonical (lower-cased, trimmed) form of a code
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsExpired returns true if the code has an expiry date in the past
func (d *DiscountCode) IsExpired(now time.Time) bool {
	return d.ExpiryDate != nil && now.After(*d.ExpiryDate)
}

// IsExhausted returns true if the usage limit has been reached
func (d *DiscountCode) IsExhausted() bool {
	return d.UsageLimit != nil && d.TimesUsed >= *d.UsageLimit
}

// IsRedeemable returns true if the code can be applied right now
func (d *DiscountCode) IsRedeemable(now time.Time) bool {
	return d.Status == DiscountStatusActive && !d.IsExpired(now) && !d.IsExhausted()
}

// AmountFor returns the raw discount for the given subtotal, before
// the combined cap is applied by the price engine
func (d *DiscountCode) AmountFor(subtotal money.Money) money.Money {
	switch d.Type {
	case DiscountTypePercentage:
		return subtotal.Percent(d.Value)
	case DiscountTypeFixedAmount:
		return d.Amount
	default:
		return 0
	}
}
