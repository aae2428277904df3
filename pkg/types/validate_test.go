package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory(Category{Name: "Sensor"}))

	err := ValidateCategory(Category{Name: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
}

func TestValidateComponent(t *testing.T) {
	tests := []struct {
		name      string
		component Component
		category  Category
		field     string
	}{
		{
			name:      "valid passive",
			component: NewPassive("RES-10K-0805", "Yageo", 8, "Resistor", 10000, "Ω", "0805"),
			category:  resistorCategory,
		},
		{
			name:      "valid active",
			component: NewActive("NE555", "Texas Instruments", 50, "IC", 15, 8, ""),
			category:  icCategory,
		},
		{
			name:      "flagless category accepts zero value",
			component: NewPassive("J1", "Molex", 3, "Connector", 0, "", ""),
			category:  connectorCategory,
		},
		{
			name:      "empty name",
			component: NewPassive(" ", "Yageo", 8, "Resistor", 10000, "Ω", "0805"),
			category:  resistorCategory,
			field:     "name",
		},
		{
			name:      "negative quantity",
			component: NewPassive("R1", "Yageo", -1, "Resistor", 10000, "Ω", "0805"),
			category:  resistorCategory,
			field:     "quantity",
		},
		{
			name:      "non-positive value",
			component: NewPassive("R1", "Yageo", 1, "Resistor", 0, "Ω", "0805"),
			category:  resistorCategory,
			field:     "value",
		},
		{
			name:      "missing package",
			component: NewPassive("R1", "Yageo", 1, "Resistor", 100, "Ω", ""),
			category:  resistorCategory,
			field:     "package",
		},
		{
			name:      "non-positive voltage",
			component: NewActive("U1", "TI", 1, "IC", 0, 8, ""),
			category:  icCategory,
			field:     "operating_voltage",
		},
		{
			name:      "pin count below one",
			component: NewActive("U1", "TI", 1, "IC", 5, 0, ""),
			category:  icCategory,
			field:     "pin_count",
		},
		{
			name:      "variant does not match category",
			component: NewActive("U1", "TI", 1, "Resistor", 5, 8, ""),
			category:  resistorCategory,
			field:     "kind",
		},
		{
			name:      "category mismatch",
			component: NewActive("U1", "TI", 1, "Diode", 5, 8, ""),
			category:  icCategory,
			field:     "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComponent(tt.component, tt.category)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateNewCategory(t *testing.T) {
	assert.NoError(t, ValidateNewCategory(Category{Name: "Sensor", IsActive: true}))

	tests := []struct {
		name     string
		category Category
		field    string
	}{
		{"empty name", Category{Name: ""}, "name"},
		{"system flag", Category{Name: "Sensor", IsSystem: true}, "is_system"},
		{"reserved name", Category{Name: "RESISTOR"}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewCategory(tt.category)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
