package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

// choiceRow JSONB-представление варианта select/radio опции
type choiceRow struct {
	Value       string       `json:"value"`
	Label       string       `json:"label"`
	PriceAdjust *money.Money `json:"price_adjust,omitempty"`
}

// sqmRangeRow JSONB-представление диапазона площади
type sqmRangeRow struct {
	From         float64     `json:"from"`
	To           *float64    `json:"to,omitempty"`
	PricePerUnit money.Money `json:"price_per_unit"`
}

func marshalChoices(choices []domain.OptionChoice) ([]byte, error) {
	if len(choices) == 0 {
		return nil, nil
	}
	rows := make([]choiceRow, len(choices))
	for i, c := range choices {
		rows[i] = choiceRow{Value: c.Value, Label: c.Label, PriceAdjust: c.PriceAdjust}
	}
	return json.Marshal(rows)
}

func unmarshalChoices(data []byte) ([]domain.OptionChoice, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rows []choiceRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal choices: %w", err)
	}
	choices := make([]domain.OptionChoice, len(rows))
	for i, r := range rows {
		choices[i] = domain.OptionChoice{Value: r.Value, Label: r.Label, PriceAdjust: r.PriceAdjust}
	}
	return choices, nil
}

func marshalSqmRanges(ranges []domain.SqmRange) ([]byte, error) {
	if len(ranges) == 0 {
		return nil, nil
	}
	rows := make([]sqmRangeRow, len(ranges))
	for i, r := range ranges {
		rows[i] = sqmRangeRow{From: r.From, To: r.To, PricePerUnit: r.PricePerUnit}
	}
	return json.Marshal(rows)
}

func unmarshalSqmRanges(data []byte) ([]domain.SqmRange, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rows []sqmRangeRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal sqm ranges: %w", err)
	}
	ranges := make([]domain.SqmRange, len(rows))
	for i, r := range rows {
		ranges[i] = domain.SqmRange{From: r.From, To: r.To, PricePerUnit: r.PricePerUnit}
	}
	return ranges, nil
}
