// Package units converts user-entered quantities between weight, volume and
// count units through a fixed base-unit table: grams for mass, milliliters
// for volume. The count pseudo-unit "each" never converts; it passes through
// unchanged in either direction.
package units

import (
	"fmt"
	"math"
)

// Each is the count pseudo-unit. Counted quantities cannot be converted to
// or from mass or volume, so Each short-circuits every conversion.
const Each = "each"

// Gram is the common base unit all weight normalization targets.
const Gram = "g"

// baseRates maps a unit symbol to its size in the base unit of its family.
var baseRates = map[string]float64{
	// weight, in grams
	"g":  1,
	"kg": 1000,
	"oz": 28.34952,
	"lb": 453.592,

	// volume, in milliliters
	"ml":    1,
	"l":     1000,
	"fl oz": 29.5735,
	"gal":   3785.41,
}

// UnknownUnitError reports a conversion involving an unregistered unit symbol.
type UnknownUnitError struct {
	Unit string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("units: unknown unit %q", e.Unit)
}

// Convert translates a quantity from one unit to another through the base
// table. Identical units return the value unchanged to avoid a floating
// round trip, and the Each pseudo-unit passes through on either side.
func Convert(value float64, fromUnit, toUnit string) (float64, error) {
	if fromUnit == toUnit {
		return value, nil
	}
	if fromUnit == Each || toUnit == Each {
		return value, nil
	}

	fromRate, ok := baseRates[fromUnit]
	if !ok {
		return 0, &UnknownUnitError{Unit: fromUnit}
	}
	toRate, ok := baseRates[toUnit]
	if !ok {
		return 0, &UnknownUnitError{Unit: toUnit}
	}

	return value * fromRate / toRate, nil
}

// Known reports whether the unit symbol is registered, counting Each.
func Known(unit string) bool {
	if unit == Each {
		return true
	}
	_, ok := baseRates[unit]
	return ok
}

// ForCategory returns the unit vocabulary offered for a material type. The
// first element is the default pre-selected unit for new entries.
func ForCategory(materialType string) []string {
	switch materialType {
	case "oil", "butter":
		return []string{"g", "kg", "oz", "lb", Each}
	case "fragrance", "colorant":
		return []string{Each, "g", "oz"}
	case "additive":
		return []string{Each, "g", "oz", "ml", "fl oz"}
	default:
		return []string{Each, "g", "kg"}
	}
}

// DefaultForCategory returns the pre-selected unit for a material type.
func DefaultForCategory(materialType string) string {
	return ForCategory(materialType)[0]
}

// InCategory reports whether the unit belongs to the vocabulary offered for
// the material type.
func InCategory(unit, materialType string) bool {
	for _, candidate := range ForCategory(materialType) {
		if candidate == unit {
			return true
		}
	}
	return false
}

// NormalizeForCategory returns the unit unchanged when it belongs to the
// type's vocabulary and the category default otherwise.
func NormalizeForCategory(unit, materialType string) string {
	if InCategory(unit, materialType) {
		return unit
	}
	return DefaultForCategory(materialType)
}

// ValidateConversion reports whether a conversion request is well formed:
// both units registered and the value a finite, non-negative number.
func ValidateConversion(value float64, fromUnit, toUnit string) bool {
	if !Known(fromUnit) || !Known(toUnit) {
		return false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value >= 0
}
