package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

// Product is a sellable item, optionally linked to the recipe it is made
// from and to a remote Shopify product. SKU uniqueness is advisory only;
// duplicates are surfaced as warnings rather than rejected.
type Product struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Weight      float64 `json:"weight"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	SKU         string  `gorm:"index" json:"sku"`
	ShopifyID   string  `json:"shopify_id"`
	RecipeID    *uint   `json:"recipe_id"`
	Recipe      *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	Status      string  `gorm:"not null;default:active" json:"status"`
}

// ValidProductStatus reports whether the value is a recognised status.
func ValidProductStatus(value string) bool {
	switch value {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// NormalizeProductStatus lowercases and trims the value, falling back to
// ProductStatusActive for anything unrecognised.
func NormalizeProductStatus(value string) string {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	if ValidProductStatus(cleaned) {
		return cleaned
	}
	return ProductStatusActive
}
