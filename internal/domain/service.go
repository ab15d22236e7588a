package domain

import (
	"time"

	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

// OptionType represents the kind of customer-configurable service option
type OptionType string

const (
	OptionTypeCheckbox OptionType = "checkbox"
	OptionTypeText     OptionType = "text"
	OptionTypeTextarea OptionType = "textarea"
	OptionTypeSelect   OptionType = "select"
	OptionTypeRadio    OptionType = "radio"
	OptionTypeQuantity OptionType = "quantity"
	OptionTypeNumber   OptionType = "number"
	OptionTypeSqm      OptionType = "sqm"
)

// PriceImpactType represents how an option selection changes the price
type PriceImpactType string

const (
	PriceImpactNone       PriceImpactType = "none"
	PriceImpactFixed      PriceImpactType = "fixed"
	PriceImpactPercentage PriceImpactType = "percentage"
	PriceImpactPerUnit    PriceImpactType = "per_unit"
)

// Service represents a bookable service of a tenant.
// Immutable for the duration of one price computation.
type Service struct {
	ID              int64
	TenantID        int64
	Name            string
	Description     *string
	BasePrice       money.Money
	DurationMinutes int
	IsActive        bool
	Options         []Option // ordered as configured in the dashboard

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OptionByID returns the option with the given id, or nil
func (s *Service) OptionByID(optionID int64) *Option {
	for i := range s.Options {
		if s.Options[i].ID == optionID {
			return &s.Options[i]
		}
	}
	return nil
}

// Option represents a customer-configurable add-on or attribute of a service
type Option struct {
	ID               int64
	ServiceID        int64
	Name             string
	Type             OptionType
	IsRequired       bool
	PriceImpactType  PriceImpactType
	PriceImpactValue money.Money // minor units for fixed/per_unit; ignored for none
	PercentValue     float64     // percent of base price for percentage impact
	SortOrder        int

	// Choices for select/radio types
	Choices []OptionChoice
	// Ranges for sqm type
	SqmRanges []SqmRange

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsChoiceBased returns true for options whose value is one of a fixed set
func (o *Option) IsChoiceBased() bool {
	return o.Type == OptionTypeSelect || o.Type == OptionTypeRadio
}

// IsNumeric returns true for options whose value is a number
func (o *Option) IsNumeric() bool {
	return o.Type == OptionTypeQuantity || o.Type == OptionTypeNumber || o.Type == OptionTypeSqm
}

// ChoiceByValue returns the choice with the given value, or nil
func (o *Option) ChoiceByValue(value string) *OptionChoice {
	for i := range o.Choices {
		if o.Choices[i].Value == value {
			return &o.Choices[i]
		}
	}
	return nil
}

// OptionChoice represents one selectable value of a select/radio option
type OptionChoice struct {
	Value       string
	Label       string
	PriceAdjust *money.Money // nil = fall back to the option-level price impact
}

// SqmRange represents a square-meter band with its own unit price.
// To == nil means the band is unbounded above.
type SqmRange struct {
	From         float64
	To           *float64
	PricePerUnit money.Money
}

// Contains returns true if the band covers the given square-meter value
func (r *SqmRange) Contains(sqm float64) bool {
	if sqm < r.From {
		return false
	}
	if r.To != nil && sqm > *r.To {
		return false
	}
	return true
}

// ConfiguredOption represents the customer's selection for one option.
// The price contribution is always derived from the Option definition at
// computation time, never stored on the selection itself.
type ConfiguredOption struct {
	OptionID      int64
	SelectedValue string // raw form value: "1" for checked checkbox, choice value, numeric string, free text
}

// Frequency represents how often the customer books the service
type Frequency string

const (
	FrequencyOneTime Frequency = "one_time"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// IsValid returns true for a known frequency value
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyOneTime, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// DiscountPercent returns the automatic discount percentage for the frequency
func (f Frequency) DiscountPercent() float64 {
	switch f {
	case FrequencyWeekly:
		return 10
	case FrequencyMonthly:
		return 5
	default:
		return 0
	}
}
