package types

import (
	"fmt"
	"strings"
)

// ValidateComponent checks c against the category it is tagged with.
// The variant must match the category's resolved kind so that a stored
// component hydrates back into the same variant.
func ValidateComponent(c Component, category Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "component name is required")
	}
	if c.Quantity < 0 {
		return NewValidationError("quantity", "quantity must not be negative")
	}
	if c.Category != category.Name {
		return NewValidationError("category", fmt.Sprintf("component category %q does not match %q", c.Category, category.Name))
	}

	kind := category.Kind()
	if c.Kind != kind {
		return NewValidationError("kind", fmt.Sprintf("category %q holds %s components, got %s", category.Name, kind, c.Kind))
	}

	switch kind {
	case KindActive:
		if c.Active == nil {
			return NewValidationError("active", "active parameters are required")
		}
		if category.IsActive {
			if c.Active.OperatingVoltage <= 0 {
				return NewValidationError("operating_voltage", "operating voltage must be positive")
			}
			if c.Active.PinCount < 1 {
				return NewValidationError("pin_count", "pin count must be at least 1")
			}
		}
	default:
		if c.Passive == nil {
			return NewValidationError("passive", "passive parameters are required")
		}
		// Flagless categories (Connector, Other) store free-form parameters
		if category.IsPassive {
			if c.Passive.Value <= 0 {
				return NewValidationError("value", "value must be positive")
			}
			if strings.TrimSpace(c.Passive.Package) == "" {
				return NewValidationError("package", "package is required")
			}
		}
	}
	return nil
}
