package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	"github.com/nordbooking/NB-BookingCore/internal/pricing"
	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

func TestNormalize_DropsUncheckedCheckboxes(t *testing.T) {
	service := testService(money.FromUnits(100), domain.Option{
		ID:   1,
		Type: domain.OptionTypeCheckbox,
	})

	tests := []struct {
		name  string
		value string
		kept  bool
	}{
		{"checked with 1", "1", true},
		{"checked with true", "true", true},
		{"checked with on", "on", true},
		{"checked with yes", "yes", true},
		{"unchecked empty", "", false},
		{"unchecked zero", "0", false},
		{"unchecked false", "false", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := pricing.Normalize(service, []domain.ConfiguredOption{
				{OptionID: 1, SelectedValue: tt.value},
			})

			if tt.kept {
				assert.Len(t, normalized, 1)
			} else {
				assert.Empty(t, normalized)
			}
		})
	}
}

func TestNormalize_DropsZeroQuantityAndEmptyText(t *testing.T) {
	service := testService(money.FromUnits(100),
		domain.Option{ID: 1, Type: domain.OptionTypeQuantity},
		domain.Option{ID: 2, Type: domain.OptionTypeText},
		domain.Option{ID: 3, Type: domain.OptionTypeSelect, Choices: []domain.OptionChoice{{Value: "a"}}},
	)

	normalized := pricing.Normalize(service, []domain.ConfiguredOption{
		{OptionID: 1, SelectedValue: "0"},
		{OptionID: 2, SelectedValue: "   "},
		{OptionID: 3, SelectedValue: "a"},
	})

	require.Len(t, normalized, 1)
	assert.Equal(t, int64(3), normalized[0].OptionID)
}

func TestNormalize_TrimsValuesAndKeepsUnknownOptions(t *testing.T) {
	service := testService(money.FromUnits(100), domain.Option{
		ID:   1,
		Type: domain.OptionTypeQuantity,
	})

	normalized := pricing.Normalize(service, []domain.ConfiguredOption{
		{OptionID: 1, SelectedValue: " 5 "},
		{OptionID: 99, SelectedValue: "whatever"},
	})

	require.Len(t, normalized, 2)
	assert.Equal(t, "5", normalized[0].SelectedValue)
	// Неизвестная опция доходит до Validate и отклоняется там
	assert.Equal(t, int64(99), normalized[1].OptionID)
}

func TestValidate_UnknownOption(t *testing.T) {
	service := testService(money.FromUnits(100))

	err := pricing.Validate(service, []domain.ConfiguredOption{
		{OptionID: 99, SelectedValue: "1"},
	})

	require.Error(t, err)
	var selErr *pricing.SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, int64(99), selErr.OptionID)
}

func TestValidate_MissingRequiredOption(t *testing.T) {
	service := testService(money.FromUnits(100), domain.Option{
		ID:         1,
		Type:       domain.OptionTypeCheckbox,
		IsRequired: true,
	})

	err := pricing.Validate(service, nil)

	require.Error(t, err)
	var selErr *pricing.SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, int64(1), selErr.OptionID)
	assert.Contains(t, selErr.Reason, "required")
}

func TestValidate_UnknownChoice(t *testing.T) {
	service := testService(money.FromUnits(100), domain.Option{
		ID:      1,
		Type:    domain.OptionTypeSelect,
		Choices: []domain.OptionChoice{{Value: "small"}, {Value: "large"}},
	})

	err := pricing.Validate(service, []domain.ConfiguredOption{
		{OptionID: 1, SelectedValue: "medium"},
	})

	require.Error(t, err)
	var selErr *pricing.SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Contains(t, selErr.Reason, "medium")
}

func TestValidate_NumericBounds(t *testing.T) {
	service := testService(money.FromUnits(100),
		domain.Option{ID: 1, Type: domain.OptionTypeQuantity},
		domain.Option{ID: 2, Type: domain.OptionTypeSqm},
	)

	tests := []struct {
		name      string
		selection domain.ConfiguredOption
		valid     bool
	}{
		{"valid quantity", domain.ConfiguredOption{OptionID: 1, SelectedValue: "5"}, true},
		{"malformed quantity", domain.ConfiguredOption{OptionID: 1, SelectedValue: "five"}, false},
		{"negative quantity", domain.ConfiguredOption{OptionID: 1, SelectedValue: "-1"}, false},
		{"quantity over limit", domain.ConfiguredOption{OptionID: 1, SelectedValue: "100500"}, false},
		{"valid sqm", domain.ConfiguredOption{OptionID: 2, SelectedValue: "75.5"}, true},
		{"malformed sqm", domain.ConfiguredOption{OptionID: 2, SelectedValue: "abc"}, false},
		{"sqm over limit", domain.ConfiguredOption{OptionID: 2, SelectedValue: "1000001"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pricing.Validate(service, []domain.ConfiguredOption{tt.selection})

			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
