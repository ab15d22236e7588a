package money

import "math"

// Money денежная сумма в минорных единицах валюты (центы, эре).
// Все расчёты цен ведутся в int64, чтобы исключить дрейф округления:
// subtotal - discount == total выполняется точно.
type Money int64

// FromUnits создает Money из целых единиц валюты (100 -> 100.00)
func FromUnits(units int64) Money {
	return Money(units * 100)
}

// Percent возвращает value процентов от суммы с округлением half-up
// до минорной единицы. 10% от 115.00 -> 11.50.
func (m Money) Percent(value float64) Money {
	return Money(roundHalfUp(float64(m) * value / 100))
}

// MulFloat умножает сумму на коэффициент с округлением half-up.
// Используется для sqm-диапазонов: price_per_unit * площадь.
func (m Money) MulFloat(factor float64) Money {
	return Money(roundHalfUp(float64(m) * factor))
}

// Mul умножает сумму на целое количество (per_unit опции)
func (m Money) Mul(qty int64) Money {
	return Money(int64(m) * qty)
}

// Min возвращает меньшую из двух сумм
func Min(a, b Money) Money {
	if a < b {
		return a
	}
	return b
}

// Max0 возвращает сумму, но не меньше нуля
func (m Money) Max0() Money {
	if m < 0 {
		return 0
	}
	return m
}

// IsNegative возвращает true для отрицательной суммы
func (m Money) IsNegative() bool {
	return m < 0
}

// roundHalfUp округляет к ближайшему целому, 0.5 всегда вверх по модулю
func roundHalfUp(v float64) int64 {
	if v < 0 {
		return -int64(math.Floor(-v + 0.5))
	}
	return int64(math.Floor(v + 0.5))
}
