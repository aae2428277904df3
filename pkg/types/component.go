package types

import (
	"fmt"
	"strconv"
	"strings"
)

// UnsavedID marks a component that has not been persisted yet
const UnsavedID int64 = -1

// ComponentKind tags which variant fields a Component carries
type ComponentKind string

const (
	KindPassive ComponentKind = "passive"
	KindActive  ComponentKind = "active"
)

// PassiveFields holds the parameters of resistors, capacitors, inductors
type PassiveFields struct {
	Value   float64 // SI base unit magnitude (ohms, farads, henries)
	Unit    string  // e.g. "Ω"
	Package string  // e.g. "0805"
}

// ActiveFields holds the parameters of ICs, transistors, diodes
type ActiveFields struct {
	OperatingVoltage float64 // Volts
	PinCount         int
	DatasheetLink    string // May be empty
}

// Component is an inventory item. Exactly one of Passive or Active is set,
// matching Kind.
type Component struct {
	ID           int64
	Name         string
	Manufacturer string
	Quantity     int
	Category     string // Category name; must resolve to an existing category

	Kind    ComponentKind
	Passive *PassiveFields
	Active  *ActiveFields
}

// NewPassive creates an unsaved passive component
func NewPassive(name, manufacturer string, quantity int, category string, value float64, unit, pkg string) Component {
	return Component{
		ID:           UnsavedID,
		Name:         name,
		Manufacturer: manufacturer,
		Quantity:     quantity,
		Category:     category,
		Kind:         KindPassive,
		Passive:      &PassiveFields{Value: value, Unit: unit, Package: pkg},
	}
}

// NewActive creates an unsaved active component
func NewActive(name, manufacturer string, quantity int, category string, voltage float64, pins int, datasheet string) Component {
	return Component{
		ID:           UnsavedID,
		Name:         name,
		Manufacturer: manufacturer,
		Quantity:     quantity,
		Category:     category,
		Kind:         KindActive,
		Active:       &ActiveFields{OperatingVoltage: voltage, PinCount: pins, DatasheetLink: datasheet},
	}
}

// IsLowStock reports whether the quantity is below threshold
func (c Component) IsLowStock(threshold int) bool {
	return c.Quantity < threshold
}

// Clone returns a deep copy that shares no variant pointers with c
func (c Component) Clone() Component {
	out := c
	if c.Passive != nil {
		p := *c.Passive
		out.Passive = &p
	}
	if c.Active != nil {
		a := *c.Active
		out.Active = &a
	}
	return out
}

// Params encodes the variant into the three generic inventory columns
// (param_1, param_2, extra_data).
//
//	passive: (value, package, unit)
//	active:  (operating voltage, pin count, datasheet link)
func (c Component) Params() (param1 float64, param2 string, extra string) {
	switch c.Kind {
	case KindActive:
		if c.Active == nil {
			return 0, "0", ""
		}
		return c.Active.OperatingVoltage, strconv.Itoa(c.Active.PinCount), c.Active.DatasheetLink
	default:
		if c.Passive == nil {
			return 0, "", ""
		}
		return c.Passive.Value, c.Passive.Package, c.Passive.Unit
	}
}

// Details returns a one-line human readable summary of the variant fields
func (c Component) Details() string {
	switch c.Kind {
	case KindActive:
		if c.Active == nil {
			return ""
		}
		details := fmt.Sprintf("%.1fV, %d pins", c.Active.OperatingVoltage, c.Active.PinCount)
		if c.Active.DatasheetLink != "" {
			details += ", Datasheet available"
		}
		return details
	default:
		if c.Passive == nil {
			return ""
		}
		return fmt.Sprintf("%s %s, Package: %s, Qty: %d",
			FormatValue(c.Passive.Value), c.Passive.Unit, c.Passive.Package, c.Quantity)
	}
}

// DisplayValue renders the primary parameter: "4.7kΩ" or "3.3V"
func (c Component) DisplayValue() string {
	switch c.Kind {
	case KindActive:
		if c.Active == nil {
			return ""
		}
		return fmt.Sprintf("%.1fV", c.Active.OperatingVoltage)
	default:
		if c.Passive == nil {
			return ""
		}
		return FormatValue(c.Passive.Value) + c.Passive.Unit
	}
}

// DisplayPackage renders the secondary parameter: "0805" or "48 pins"
func (c Component) DisplayPackage() string {
	switch c.Kind {
	case KindActive:
		if c.Active == nil {
			return ""
		}
		return fmt.Sprintf("%d pins", c.Active.PinCount)
	default:
		if c.Passive == nil {
			return ""
		}
		return c.Passive.Package
	}
}

// Row is the flat persisted form of a component
type Row struct {
	ID           int64
	Name         string
	Manufacturer string
	Type         string // Category name
	Quantity     int
	Param1       float64
	Param2       string
	Extra        string
}

// Hydrate rebuilds the component variant for row using its category.
// found is false when the category no longer exists; that case, and a
// category with neither flag set, produce a passive component. The second
// return value reports whether that lossy fallback was taken.
func Hydrate(row Row, category Category, found bool) (Component, bool) {
	c := Component{
		ID:           row.ID,
		Name:         row.Name,
		Manufacturer: row.Manufacturer,
		Quantity:     row.Quantity,
		Category:     row.Type,
	}

	switch {
	case found && category.IsPassive:
		c.Kind = KindPassive
		c.Passive = &PassiveFields{Value: row.Param1, Unit: row.Extra, Package: row.Param2}
		return c, false
	case found && category.IsActive:
		// A non-numeric pin count hydrates as 0 rather than failing the read
		pins, _ := strconv.Atoi(strings.TrimSpace(row.Param2))
		c.Kind = KindActive
		c.Active = &ActiveFields{OperatingVoltage: row.Param1, PinCount: pins, DatasheetLink: row.Extra}
		return c, false
	default:
		c.Kind = KindPassive
		c.Passive = &PassiveFields{Value: row.Param1, Unit: row.Extra, Package: row.Param2}
		return c, true
	}
}

// ToRow flattens c for storage
func (c Component) ToRow() Row {
	p1, p2, extra := c.Params()
	return Row{
		ID:           c.ID,
		Name:         c.Name,
		Manufacturer: c.Manufacturer,
		Type:         c.Category,
		Quantity:     c.Quantity,
		Param1:       p1,
		Param2:       p2,
		Extra:        extra,
	}
}
