package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
)

// SelectionError ошибка валидации выбора одной опции
type SelectionError struct {
	OptionID int64
	Reason   string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("option %d: %s", e.OptionID, e.Reason)
}

// checkboxChecked значения формы, трактуемые как отмеченный чекбокс
func checkboxChecked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Normalize приводит сырые значения формы к каноничному набору выборов:
//   - неотмеченные чекбоксы исключаются
//   - quantity/number со значением 0 или пустым исключаются из набора
//     полностью (не просто нулевой вклад)
//   - пустые text/textarea исключаются
//   - выборы по неизвестным опциям сохраняются - их отловит Validate
//
// Порядок выборов сохраняется.
func Normalize(service *domain.Service, selections []domain.ConfiguredOption) []domain.ConfiguredOption {
	normalized := make([]domain.ConfiguredOption, 0, len(selections))

	for _, sel := range selections {
		option := service.OptionByID(sel.OptionID)
		if option == nil {
			normalized = append(normalized, sel)
			continue
		}

		value := strings.TrimSpace(sel.SelectedValue)

		switch option.Type {
		case domain.OptionTypeCheckbox:
			if !checkboxChecked(value) {
				continue
			}
		case domain.OptionTypeQuantity, domain.OptionTypeNumber:
			if value == "" || value == "0" {
				continue
			}
		case domain.OptionTypeText, domain.OptionTypeTextarea:
			if value == "" {
				continue
			}
		}

		normalized = append(normalized, domain.ConfiguredOption{
			OptionID:      sel.OptionID,
			SelectedValue: value,
		})
	}

	return normalized
}

// Validate проверяет нормализованный набор выборов против определения услуги.
// Возвращает SelectionError с ID проблемной опции. Валидация выполняется
// до расчёта, сам расчёт (Compute) ошибок не возвращает.
func Validate(service *domain.Service, selections []domain.ConfiguredOption) error {
	selected := make(map[int64]string, len(selections))

	for _, sel := range selections {
		option := service.OptionByID(sel.OptionID)
		if option == nil {
			return &SelectionError{OptionID: sel.OptionID, Reason: "unknown option"}
		}
		selected[sel.OptionID] = sel.SelectedValue

		if err := validateValue(option, sel.SelectedValue); err != nil {
			return err
		}
	}

	// Обязательные опции: после нормализации выбор должен присутствовать
	for i := range service.Options {
		option := &service.Options[i]
		if !option.IsRequired {
			continue
		}
		if _, ok := selected[option.ID]; !ok {
			return &SelectionError{OptionID: option.ID, Reason: "required option is missing"}
		}
	}

	return nil
}

// validateValue проверяет значение против типа опции
func validateValue(option *domain.Option, value string) error {
	switch option.Type {
	case domain.OptionTypeSelect, domain.OptionTypeRadio:
		if option.ChoiceByValue(value) == nil {
			return &SelectionError{OptionID: option.ID, Reason: fmt.Sprintf("unknown choice %q", value)}
		}

	case domain.OptionTypeQuantity, domain.OptionTypeNumber:
		qty, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return &SelectionError{OptionID: option.ID, Reason: fmt.Sprintf("malformed quantity %q", value)}
		}
		if qty < 0 || qty > domain.MaxQuantityValue {
			return &SelectionError{OptionID: option.ID, Reason: fmt.Sprintf("quantity %d is out of range", qty)}
		}

	case domain.OptionTypeSqm:
		sqm, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return &SelectionError{OptionID: option.ID, Reason: fmt.Sprintf("malformed square meters value %q", value)}
		}
		if sqm < 0 || sqm > domain.MaxSqmValue {
			return &SelectionError{OptionID: option.ID, Reason: fmt.Sprintf("square meters value %g is out of range", sqm)}
		}

	case domain.OptionTypeText, domain.OptionTypeTextarea:
		if len(value) > domain.MaxTextOptionLength {
			return &SelectionError{OptionID: option.ID, Reason: "text value is too long"}
		}
	}

	return nil
}
