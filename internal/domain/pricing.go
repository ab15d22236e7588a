package domain

import "github.com/nordbooking/NB-BookingCore/pkg/money"

// OptionContribution represents one option's share of the subtotal,
// kept for the itemized breakdown shown to the customer
type OptionContribution struct {
	OptionID   int64
	OptionName string
	Amount     money.Money
}

// PricingResult represents the outcome of one price computation.
// Invariants: DiscountAmount <= Subtotal, FinalTotal = Subtotal - DiscountAmount >= 0.
type PricingResult struct {
	BasePrice money.Money
	Options   []OptionContribution
	Subtotal  money.Money

	FrequencyDiscount money.Money
	CodeDiscount      money.Money
	DiscountAmount    money.Money // frequency + code, capped at subtotal
	AppliedCode       *string     // normalized code, nil when no code applied

	FinalTotal money.Money
}

// OptionsTotal returns the sum of all option contributions
func (r *PricingResult) OptionsTotal() money.Money {
	var total money.Money
	for _, c := range r.Options {
		total += c.Amount
	}
	return total
}
