package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	resistorCategory  = Category{ID: 1, Name: "Resistor", IsPassive: true, DefaultUnit: "Ω", IsSystem: true}
	icCategory        = Category{ID: 4, Name: "IC", IsActive: true, IsSystem: true}
	connectorCategory = Category{ID: 7, Name: "Connector", IsSystem: true}
)

func TestCategoryKind(t *testing.T) {
	assert.Equal(t, KindPassive, resistorCategory.Kind())
	assert.Equal(t, KindActive, icCategory.Kind())
	assert.Equal(t, KindPassive, connectorCategory.Kind())

	both := Category{Name: "Hybrid", IsPassive: true, IsActive: true}
	assert.Equal(t, KindPassive, both.Kind(), "passive takes precedence")
}

func TestIsReservedCategoryName(t *testing.T) {
	assert.True(t, IsReservedCategoryName("Resistor"))
	assert.True(t, IsReservedCategoryName("other"))
	assert.True(t, IsReservedCategoryName("  IC "))
	assert.False(t, IsReservedCategoryName("Sensor"))
	assert.False(t, IsReservedCategoryName(""))
}

func TestComponentParamsRoundTrip(t *testing.T) {
	t.Run("passive", func(t *testing.T) {
		c := NewPassive("RES-4K7-0805", "Panasonic", 75, "Resistor", 4700.0, "Ω", "0805")
		c.ID = 10

		got, fallback := Hydrate(c.ToRow(), resistorCategory, true)
		assert.False(t, fallback)
		require.Equal(t, KindPassive, got.Kind)
		require.NotNil(t, got.Passive)
		assert.Nil(t, got.Active)
		assert.Equal(t, c, got)
	})

	t.Run("active", func(t *testing.T) {
		c := NewActive("STM32F103C8T6", "STMicroelectronics", 15, "IC", 3.3, 48, "https://example.com/ds.pdf")
		c.ID = 11

		row := c.ToRow()
		assert.Equal(t, 3.3, row.Param1)
		assert.Equal(t, "48", row.Param2)
		assert.Equal(t, "https://example.com/ds.pdf", row.Extra)

		got, fallback := Hydrate(row, icCategory, true)
		assert.False(t, fallback)
		require.Equal(t, KindActive, got.Kind)
		assert.Equal(t, c, got)
	})
}

func TestHydrate(t *testing.T) {
	row := Row{ID: 3, Name: "J1", Manufacturer: "Molex", Type: "Connector", Quantity: 4, Param1: 2.54, Param2: "THT", Extra: "mm"}

	t.Run("flagless category falls back to passive", func(t *testing.T) {
		c, fallback := Hydrate(row, connectorCategory, true)
		assert.True(t, fallback)
		require.NotNil(t, c.Passive)
		assert.Equal(t, 2.54, c.Passive.Value)
		assert.Equal(t, "mm", c.Passive.Unit)
		assert.Equal(t, "THT", c.Passive.Package)
	})

	t.Run("missing category falls back to passive", func(t *testing.T) {
		c, fallback := Hydrate(row, Category{}, false)
		assert.True(t, fallback)
		assert.Equal(t, KindPassive, c.Kind)
		assert.Equal(t, "Connector", c.Category)
	})

	t.Run("unparsable pin count hydrates as zero", func(t *testing.T) {
		bad := Row{ID: 4, Name: "U1", Type: "IC", Param1: 5, Param2: "many"}
		c, fallback := Hydrate(bad, icCategory, true)
		assert.False(t, fallback)
		require.NotNil(t, c.Active)
		assert.Equal(t, 0, c.Active.PinCount)
	})

	t.Run("passive wins when both flags set", func(t *testing.T) {
		both := Category{Name: "Connector", IsPassive: true, IsActive: true}
		c, fallback := Hydrate(row, both, true)
		assert.False(t, fallback)
		assert.Equal(t, KindPassive, c.Kind)
	})
}

func TestComponentClone(t *testing.T) {
	c := NewActive("NE555", "Texas Instruments", 50, "IC", 15.0, 8, "")
	clone := c.Clone()
	clone.Active.PinCount = 14
	clone.Name = "NE556"

	assert.Equal(t, 8, c.Active.PinCount)
	assert.Equal(t, "NE555", c.Name)
}

func TestComponentIsLowStock(t *testing.T) {
	c := NewPassive("CAP-1uF-0805", "Samsung", 5, "Capacitor", 1e-6, "F", "0805")
	assert.True(t, c.IsLowStock(10))
	assert.False(t, c.IsLowStock(5))
	assert.False(t, c.IsLowStock(0))
}

func TestComponentDetails(t *testing.T) {
	r := NewPassive("RES-4K7-0805", "Panasonic", 75, "Resistor", 4700, "Ω", "0805")
	assert.Equal(t, "4.7k Ω, Package: 0805, Qty: 75", r.Details())
	assert.Equal(t, "4.7kΩ", r.DisplayValue())
	assert.Equal(t, "0805", r.DisplayPackage())

	ic := NewActive("STM32F103C8T6", "STMicroelectronics", 15, "IC", 3.3, 48, "https://example.com/ds.pdf")
	assert.Equal(t, "3.3V, 48 pins, Datasheet available", ic.Details())
	assert.Equal(t, "3.3V", ic.DisplayValue())
	assert.Equal(t, "48 pins", ic.DisplayPackage())

	reg := NewActive("LM7805", "ON Semiconductor", 7, "IC", 35, 3, "")
	assert.Equal(t, "35.0V, 3 pins", reg.Details())
}
