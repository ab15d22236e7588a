// Package pricing реализует чистый расчёт цены бронирования:
// базовая цена + вклады опций + частотная скидка + промокод.
// Никакого I/O - все данные передаются аргументами, расчёт детерминирован.
package pricing

import (
	"strconv"
	"strings"
	"time"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

// Compute вычисляет PricingResult для услуги с выбранными опциями.
//
// Предусловие: selections прошли Validate и Normalize - Compute тотален
// и не возвращает ошибок. Правила вкладов опций:
//   - процентные вклады всегда считаются от базовой цены услуги,
//     а не от накопленного subtotal (нет каскадирования процентов)
//   - частотная скидка и промокод считаются независимо от subtotal
//     до скидок, складываются и ограничиваются subtotal
func Compute(
	service *domain.Service,
	selections []domain.ConfiguredOption,
	frequency domain.Frequency,
	discount *domain.DiscountCode,
) *domain.PricingResult {
	result := &domain.PricingResult{
		BasePrice: service.BasePrice,
		Options:   make([]domain.OptionContribution, 0, len(selections)),
	}

	subtotal := service.BasePrice

	for _, sel := range selections {
		option := service.OptionByID(sel.OptionID)
		if option == nil {
			// Validate гарантирует существование опции; пропуск на всякий случай
			continue
		}

		amount := optionContribution(service.BasePrice, option, sel.SelectedValue)
		subtotal += amount

		result.Options = append(result.Options, domain.OptionContribution{
			OptionID:   option.ID,
			OptionName: option.Name,
			Amount:     amount,
		})
	}

	result.Subtotal = subtotal

	// Частотная скидка - процент от subtotal по фиксированной таблице
	result.FrequencyDiscount = subtotal.Percent(frequency.DiscountPercent())

	// Промокод - считается тоже от subtotal до скидок, не от остатка
	if discount != nil {
		result.CodeDiscount = discount.AmountFor(subtotal)
		code := domain.NormalizeCode(discount.Code)
		result.AppliedCode = &code
	}

	// Суммарная скидка не может превышать subtotal: итог не уходит в минус
	result.DiscountAmount = money.Min(result.FrequencyDiscount+result.CodeDiscount, subtotal)
	result.FinalTotal = (subtotal - result.DiscountAmount).Max0()

	return result
}

// optionContribution вычисляет вклад одной опции в subtotal.
// value уже нормализовано (см. Normalize).
func optionContribution(basePrice money.Money, option *domain.Option, value string) money.Money {
	switch option.Type {
	case domain.OptionTypeCheckbox:
		// Нормализация оставляет только отмеченные чекбоксы
		return impactAmount(basePrice, option)

	case domain.OptionTypeSelect, domain.OptionTypeRadio:
		choice := option.ChoiceByValue(value)
		if choice != nil && choice.PriceAdjust != nil {
			return *choice.PriceAdjust
		}
		// У варианта нет своей надбавки - fallback на импакт самой опции
		return impactAmount(basePrice, option)

	case domain.OptionTypeQuantity, domain.OptionTypeNumber:
		qty, err := strconv.ParseInt(value, 10, 64)
		if err != nil || qty <= 0 {
			return 0
		}
		if option.PriceImpactType == domain.PriceImpactPerUnit {
			return option.PriceImpactValue.Mul(qty)
		}
		// Не per_unit: фиксированный вклад один раз при qty > 0
		return impactAmount(basePrice, option)

	case domain.OptionTypeText, domain.OptionTypeTextarea:
		if strings.TrimSpace(value) == "" {
			return 0
		}
		return impactAmount(basePrice, option)

	case domain.OptionTypeSqm:
		sqm, err := strconv.ParseFloat(value, 64)
		if err != nil || sqm <= 0 {
			return 0
		}
		// Значение вне всех диапазонов даёт нулевой вклад, не клампится
		for i := range option.SqmRanges {
			if option.SqmRanges[i].Contains(sqm) {
				return option.SqmRanges[i].PricePerUnit.MulFloat(sqm)
			}
		}
		return 0

	default:
		return 0
	}
}

// impactAmount вычисляет вклад по price_impact_type/value опции.
// Процент всегда от базовой цены услуги.
func impactAmount(basePrice money.Money, option *domain.Option) money.Money {
	switch option.PriceImpactType {
	case domain.PriceImpactFixed, domain.PriceImpactPerUnit:
		// per_unit вне quantity-контекста трактуется как фиксированная надбавка
		return option.PriceImpactValue
	case domain.PriceImpactPercentage:
		return basePrice.Percent(option.PercentValue)
	default:
		return 0
	}
}

// CheckDiscount проверяет применимость промокода.
// Возвращает причину отказа или пустую строку, если код применим.
func CheckDiscount(discount *domain.DiscountCode, now time.Time) RejectReason {
	switch {
	case discount == nil:
		return RejectNotFound
	case discount.Status != domain.DiscountStatusActive:
		return RejectInactive
	case discount.IsExpired(now):
		return RejectExpired
	case discount.IsExhausted():
		return RejectExhausted
	default:
		return ""
	}
}

// RejectReason причина отклонения промокода
type RejectReason string

const (
	RejectNotFound  RejectReason = "not_found"
	RejectInactive  RejectReason = "inactive"
	RejectExpired   RejectReason = "expired"
	RejectExhausted RejectReason = "usage_limit_reached"
)
