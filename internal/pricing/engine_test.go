package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/internal/pricing"
	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

func moneyPtr(m money.Money) *money.Money { return &m }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func testService(basePrice money.Money, options ...domain.Option) *domain.Service {
	return &domain.Service{
		ID:              1,
		TenantID:        42,
		Name:            "Deep cleaning",
		BasePrice:       basePrice,
		DurationMinutes: 120,
		IsActive:        true,
		Options:         options,
	}
}

func TestCompute_BasePriceOnly(t *testing.T) {
	service := testService(money.FromUnits(100))

	result := pricing.Compute(service, nil, domain.FrequencyOneTime, nil)

	assert.Equal(t, money.FromUnits(100), result.BasePrice)
	assert.Equal(t, money.FromUnits(100), result.Subtotal)
	assert.Equal(t, money.Money(0), result.DiscountAmount)
	assert.Equal(t, money.FromUnits(100), result.FinalTotal)
	assert.Empty(t, result.Options)
	assert.Nil(t, result.AppliedCode)
}

func TestCompute_FrequencyDiscounts(t *testing.T) {
	tests := []struct {
		name      string
		frequency domain.Frequency
		discount  money.Money
	}{
		{"one_time has no discount", domain.FrequencyOneTime, 0},
		{"weekly gets 10 percent", domain.FrequencyWeekly, money.FromUnits(10)},
		{"monthly gets 5 percent", domain.FrequencyMonthly, money.FromUnits(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := testService(money.FromUnits(100))

			result := pricing.Compute(service, nil, tt.frequency, nil)

			assert.Equal(t, tt.discount, result.FrequencyDiscount)
			assert.Equal(t, money.FromUnits(100)-tt.discount, result.FinalTotal)
		})
	}
}

func TestCompute_FrequencyDiscountAppliesToSubtotalWithOptions(t *testing.T) {
	// 100.00 базовая + 15.00 чекбокс = 115.00, weekly 10% = 11.50
	service := testService(money.FromUnits(100), domain.Option{
		ID:               10,
		Type:             domain.OptionTypeCheckbox,
		Name:             "Inside fridge",
		PriceImpactType:  domain.PriceImpactFixed,
		PriceImpactValue: money.FromUnits(15),
	})
	selections := []domain.ConfiguredOption{{OptionID: 10, SelectedValue: "1"}}

	result := pricing.Compute(service, selections, domain.FrequencyWeekly, nil)

	assert.Equal(t, money.FromUnits(115), result.Subtotal)
	assert.Equal(t, money.Money(1150), result.FrequencyDiscount)
	assert.Equal(t, money.Money(11500-1150), result.FinalTotal)
}

func TestCompute_PercentageOptionUsesBasePriceNotSubtotal(t *testing.T) {
	// Два процентных импакта по 10%: оба от 200.00, не каскадом
	service := testService(money.FromUnits(200),
		domain.Option{
			ID:              1,
			Type:            domain.OptionTypeCheckbox,
			PriceImpactType: domain.PriceImpactPercentage,
			PercentValue:    10,
		},
		domain.Option{
			ID:              2,
			Type:            domain.OptionTypeCheckbox,
			PriceImpactType: domain.PriceImpactPercentage,
			PercentValue:    10,
		},
	)
	selections := []domain.ConfiguredOption{
		{OptionID: 1, SelectedValue: "1"},
		{OptionID: 2, SelectedValue: "1"},
	}

	result := pricing.Compute(service, selections, domain.FrequencyOneTime, nil)

	require.Len(t, result.Options, 2)
	assert.Equal(t, money.FromUnits(20), result.Options[0].Amount)
	assert.Equal(t, money.FromUnits(20), result.Options[1].Amount)
	assert.Equal(t, money.FromUnits(240), result.Subtotal)
}

func TestCompute_PerUnitQuantity(t *testing.T) {
	service := testService(money.FromUnits(50), domain.Option{
		ID:               7,
		Type:             domain.OptionTypeQuantity,
		Name:             "Extra windows",
		PriceImpactType:  domain.PriceImpactPerUnit,
		PriceImpactValue: money.FromUnits(3),
	})
	selections := []domain.ConfiguredOption{{OptionID: 7, SelectedValue: "4"}}

	result := pricing.Compute(service, selections, domain.FrequencyOneTime, nil)

	require.Len(t, result.Options, 1)
	assert.Equal(t, money.FromUnits(12), result.Options[0].Amount)
	assert.Equal(t, money.FromUnits(62), result.Subtotal)
}

func TestCompute_SelectChoiceAdjustment(t *testing.T) {
	service := testService(money.FromUnits(80), domain.Option{
		ID:   3,
		Type: domain.OptionTypeSelect,
		Name: "Home size",
		Choices: []domain.OptionChoice{
			{Value: "small", Label: "Small", PriceAdjust: moneyPtr(0)},
			{Value: "large", Label: "Large", PriceAdjust: moneyPtr(money.FromUnits(40))},
		},
	})
	selections := []domain.ConfiguredOption{{OptionID: 3, SelectedValue: "large"}}

	result := pricing.Compute(service, selections, domain.FrequencyOneTime, nil)

	assert.Equal(t, money.FromUnits(120), result.Subtotal)
}

func TestCompute_SelectChoiceWithoutAdjustFallsBackToOptionImpact(t *testing.T) {
	service := testService(money.FromUnits(80), domain.Option{
		ID:               3,
		Type:             domain.OptionTypeRadio,
		PriceImpactType:  domain.PriceImpactFixed,
		PriceImpactValue: money.FromUnits(5),
		Choices: []domain.OptionChoice{
			{Value: "standard", Label: "Standard"},
		},
	})
	selections := []domain.ConfiguredOption{{OptionID: 3, SelectedValue: "standard"}}

	result := pricing.Compute(service, selections, domain.FrequencyOneTime, nil)

	assert.Equal(t, money.FromUnits(85), result.Subtotal)
}

func TestCompute_SqmRanges(t *testing.T) {
	option := domain.Option{
		ID:   5,
		Type: domain.OptionTypeSqm,
		SqmRanges: []domain.SqmRange{
			{From: 0, To: floatPtr(50), PricePerUnit: money.FromUnits(2)},
			{From: 50.01, To: nil, PricePerUnit: money.FromUnits(1)},
		},
	}

	tests := []struct {
		name     string
		value    string
		expected money.Money
	}{
		{"first band", "40", money.FromUnits(80)},
		{"unbounded band", "100", money.FromUnits(100)},
		{"fractional area rounds half-up", "40.5", money.FromUnits(81)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := testService(money.FromUnits(10), option)
			selections := []domain.ConfiguredOption{{OptionID: 5, SelectedValue: tt.value}}

			result := pricing.Compute(service, selections, domain.FrequencyOneTime, nil)

			require.Len(t, result.Options, 1)
			assert.Equal(t, tt.expected, result.Options[0].Amount)
		})
	}
}

func TestCompute_PercentageDiscountCode(t *testing.T) {
	service := testService(money.FromUnits(100))
	discount := &domain.DiscountCode{
		ID:     1,
		Code:   "SAVE20",
		Type:   domain.DiscountTypePercentage,
		Value:  20,
		Status: domain.DiscountStatusActive,
	}

	result := pricing.Compute(service, nil, domain.FrequencyOneTime, discount)

	assert.Equal(t, money.FromUnits(20), result.CodeDiscount)
	assert.Equal(t, money.FromUnits(80), result.FinalTotal)
	require.NotNil(t, result.AppliedCode)
	assert.Equal(t, "save20", *result.AppliedCode)
}

func TestCompute_FrequencyAndCodeDiscountsAreAdditive(t *testing.T) {
	// weekly 10% + код 20% - оба от subtotal 100.00, итог 70.00
	service := testService(money.FromUnits(100))
	discount := &domain.DiscountCode{
		Code:   "combo",
		Type:   domain.DiscountTypePercentage,
		Value:  20,
		Status: domain.DiscountStatusActive,
	}

	result := pricing.Compute(service, nil, domain.FrequencyWeekly, discount)

	assert.Equal(t, money.FromUnits(10), result.FrequencyDiscount)
	assert.Equal(t, money.FromUnits(20), result.CodeDiscount)
	assert.Equal(t, money.FromUnits(30), result.DiscountAmount)
	assert.Equal(t, money.FromUnits(70), result.FinalTotal)
}

func TestCompute_DiscountCappedAtSubtotal(t *testing.T) {
	// Фиксированная скидка 200.00 на subtotal 50.00 - итог ровно 0
	service := testService(money.FromUnits(50))
	discount := &domain.DiscountCode{
		Code:   "HUGE",
		Type:   domain.DiscountTypeFixedAmount,
		Amount: money.FromUnits(200),
		Status: domain.DiscountStatusActive,
	}

	result := pricing.Compute(service, nil, domain.FrequencyOneTime, discount)

	assert.Equal(t, money.FromUnits(50), result.DiscountAmount)
	assert.Equal(t, money.Money(0), result.FinalTotal)
}

func TestCheckDiscount(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		discount *domain.DiscountCode
		expected pricing.RejectReason
	}{
		{
			name:     "nil code",
			discount: nil,
			expected: pricing.RejectNotFound,
		},
		{
			name: "inactive code",
			discount: &domain.DiscountCode{
				Status: domain.DiscountStatusInactive,
			},
			expected: pricing.RejectInactive,
		},
		{
			name: "expired code",
			discount: &domain.DiscountCode{
				Status:     domain.DiscountStatusActive,
				ExpiryDate: &past,
			},
			expected: pricing.RejectExpired,
		},
		{
			name: "exhausted code",
			discount: &domain.DiscountCode{
				Status:     domain.DiscountStatusActive,
				UsageLimit: intPtr(3),
				TimesUsed:  3,
			},
			expected: pricing.RejectExhausted,
		},
		{
			name: "valid code",
			discount: &domain.DiscountCode{
				Status:     domain.DiscountStatusActive,
				ExpiryDate: &future,
				UsageLimit: intPtr(3),
				TimesUsed:  2,
			},
			expected: pricing.RejectReason(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pricing.CheckDiscount(tt.discount, now))
		})
	}
}
