package models

import "gorm.io/gorm"

// Settings is the single row of workshop-wide defaults. The Shopify fields
// are blank unless the owner has connected a store.
type Settings struct {
	gorm.Model
	DefaultWeightUnit  string  `gorm:"not null;default:g" json:"default_weight_unit"`
	DefaultCurrency    string  `gorm:"not null;default:USD" json:"default_currency"`
	LaborCostPerHour   float64 `json:"labor_cost_per_hour"`
	DefaultSuperFat    float64 `json:"default_super_fat"`
	DefaultWaterRatio  float64 `json:"default_water_ratio"`
	ShopifyDomain      string  `json:"shopify_domain"`
	ShopifyAccessToken string  `json:"-"`
}

// DefaultSettings returns the built-in defaults applied when no settings row
// exists yet.
func DefaultSettings() Settings {
	return Settings{
		DefaultWeightUnit: "g",
		DefaultCurrency:   "USD",
		LaborCostPerHour:  15,
		DefaultSuperFat:   5,
		DefaultWaterRatio: 38,
	}
}
