// Package types provides the inventory domain model shared by the storage
// layer, the inventory facade and the outer surfaces.
//
// # Core Types
//
// Category classifies components and decides which variant a stored row
// hydrates into:
//
//	cat := types.Category{
//	    Name:        "Resistor",
//	    IsPassive:   true,
//	    DefaultUnit: "Ω",
//	}
//
// Component carries the common inventory fields plus exactly one variant:
//
//	r := types.NewPassive("RES-4K7-0805", "Panasonic", 75, "Resistor", 4700, "Ω", "0805")
//	u := types.NewActive("STM32F103C8T6", "STMicroelectronics", 15, "IC", 3.3, 48, datasheetURL)
//
// # Persistence Encoding
//
// The variant writes itself into three generic columns with
// Component.Params and is rebuilt with Hydrate. When a category has both
// flags set, passive wins. A missing or flagless category hydrates as
// passive; Hydrate reports that fallback so callers can log it.
//
// # Validation
//
// ValidateCategory and ValidateComponent run before any write. Failures
// are *ValidationError values that match ErrValidation with errors.Is.
//
// # Formatting
//
// FormatValue scales a passive value to an SI prefix with three
// significant digits:
//
//	types.FormatValue(10000)  // "10k"
//	types.FormatValue(100e-9) // "100n"
package types
