package models

import (
	"strings"

	"gorm.io/gorm"
)

// Material types drive the unit vocabulary offered when editing stock.
const (
	MaterialTypeOil       = "oil"
	MaterialTypeButter    = "butter"
	MaterialTypeAdditive  = "additive"
	MaterialTypeFragrance = "fragrance"
	MaterialTypeColorant  = "colorant"
	MaterialTypeOther     = "other"
)

// Material is a purchasable input: an oil, butter, additive, fragrance or
// colorant. SAPValue is grams of lye per gram of fat; Cost is currency per
// kilogram of the stored unit mass.
type Material struct {
	gorm.Model
	Name     string  `gorm:"not null;index" json:"name"`
	Type     string  `gorm:"not null;default:other" json:"type"`
	SAPValue float64 `json:"sap_value"`
	Cost     float64 `json:"cost"`
	Unit     string  `gorm:"not null;default:g" json:"unit"`
	Stock    float64 `json:"stock"`
	Supplier string  `json:"supplier"`
	Notes    string  `gorm:"type:text" json:"notes"`
}

// ValidMaterialType reports whether the value is one of the recognised types.
func ValidMaterialType(value string) bool {
	switch value {
	case MaterialTypeOil, MaterialTypeButter, MaterialTypeAdditive,
		MaterialTypeFragrance, MaterialTypeColorant, MaterialTypeOther:
		return true
	}
	return false
}

// NormalizeMaterialType lowercases and trims the value, falling back to
// MaterialTypeOther for anything unrecognised.
func NormalizeMaterialType(value string) string {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	if ValidMaterialType(cleaned) {
		return cleaned
	}
	return MaterialTypeOther
}
