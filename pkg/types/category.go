package types

import "strings"

// FallbackCategory receives the components of a deleted category
const FallbackCategory = "Other"

// Category classifies components and decides which variant a stored row
// hydrates into.
type Category struct {
	ID          int64
	Name        string
	IsPassive   bool
	IsActive    bool
	DefaultUnit string
	IsSystem    bool // Set only by the schema seed; never changes afterwards
}

// Kind returns the component variant rows of this category hydrate into.
// IsPassive takes precedence over IsActive when both are set, and a
// category with neither flag falls back to passive.
func (c Category) Kind() ComponentKind {
	if c.IsPassive {
		return KindPassive
	}
	if c.IsActive {
		return KindActive
	}
	return KindPassive
}

// SystemCategories are the built-in categories seeded on first run, in
// insertion order.
var SystemCategories = []Category{
	{Name: "Resistor", IsPassive: true, DefaultUnit: "Ω", IsSystem: true},
	{Name: "Capacitor", IsPassive: true, DefaultUnit: "F", IsSystem: true},
	{Name: "Inductor", IsPassive: true, DefaultUnit: "H", IsSystem: true},
	{Name: "IC", IsActive: true, IsSystem: true},
	{Name: "Transistor", IsActive: true, IsSystem: true},
	{Name: "Diode", IsActive: true, IsSystem: true},
	{Name: "Connector", IsSystem: true},
	{Name: FallbackCategory, IsSystem: true},
}

// IsReservedCategoryName reports whether name matches one of the built-in
// category names, ignoring case. The list is fixed: renaming a system row
// (which the store refuses anyway) would not change it.
func IsReservedCategoryName(name string) bool {
	name = strings.TrimSpace(name)
	for _, c := range SystemCategories {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// ValidateCategory checks the fields a caller controls when creating or
// editing a category.
func ValidateCategory(c Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "category name is required")
	}
	return nil
}

// ValidateNewCategory applies the additional rules for categories created
// by callers: they are never system rows and may not reuse a built-in name.
func ValidateNewCategory(c Category) error {
	if err := ValidateCategory(c); err != nil {
		return err
	}
	if c.IsSystem {
		return NewValidationError("is_system", "system categories cannot be created")
	}
	if IsReservedCategoryName(c.Name) {
		return NewValidationError("name", "name is reserved for a built-in category")
	}
	return nil
}
