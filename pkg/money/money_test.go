package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

func TestPercent_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		name     string
		amount   money.Money
		percent  float64
		expected money.Money
	}{
		{"10 percent of 115.00", money.FromUnits(115), 10, 1150},
		{"5 percent of 115.00", money.FromUnits(115), 5, 575},
		{"exact half rounds up", 125, 10, 13},   // 12.5 -> 13
		{"below half rounds down", 124, 10, 12}, // 12.4 -> 12
		{"zero percent", money.FromUnits(100), 0, 0},
		{"full percent", money.FromUnits(100), 100, money.FromUnits(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.amount.Percent(tt.percent))
		})
	}
}

func TestMulFloat_RoundsHalfUp(t *testing.T) {
	// 2.00 за единицу * 40.5 единиц = 81.00
	assert.Equal(t, money.FromUnits(81), money.FromUnits(2).MulFloat(40.5))
	// 0.33 * 0.5 = 0.165 -> 0.17
	assert.Equal(t, money.Money(17), money.Money(33).MulFloat(0.5))
}

func TestMul(t *testing.T) {
	assert.Equal(t, money.FromUnits(12), money.FromUnits(3).Mul(4))
	assert.Equal(t, money.Money(0), money.FromUnits(3).Mul(0))
}

func TestMinAndMax0(t *testing.T) {
	assert.Equal(t, money.Money(5), money.Min(5, 10))
	assert.Equal(t, money.Money(5), money.Min(10, 5))

	assert.Equal(t, money.Money(0), money.Money(-25).Max0())
	assert.Equal(t, money.Money(25), money.Money(25).Max0())
}
