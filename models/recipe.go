package models

import (
	"gorm.io/gorm"
)

// Recipe is a soap formulation: an ordered list of oil lines plus the
// saponification parameters applied to them. WaterRatio and SuperFat are
// percentages; LaborTime is minutes and LaborCost is currency per hour.
type Recipe struct {
	gorm.Model
	Name         string      `gorm:"not null" json:"name"`
	Description  string      `gorm:"type:text" json:"description"`
	Oils         []RecipeOil `gorm:"foreignKey:RecipeID" json:"oils"`
	WaterRatio   float64     `json:"water_ratio"`
	SuperFat     float64     `json:"super_fat"`
	Instructions string      `gorm:"type:text" json:"instructions"`
	Yield        int         `json:"yield"`
	TotalWeight  float64     `json:"total_weight"`
	LaborTime    float64     `json:"labor_time"`
	LaborCost    float64     `json:"labor_cost"`
	Notes        string      `gorm:"type:text" json:"notes"`
}

// RecipeOil references a material by id with a user-entered quantity.
// The reference is allowed to dangle: deleting a material leaves dependent
// lines in place and calculations treat them as contributing zero.
type RecipeOil struct {
	gorm.Model
	RecipeID   uint      `gorm:"not null" json:"recipe_id"`
	MaterialID uint      `json:"material_id"`
	Weight     float64   `json:"weight"`
	Unit       string    `json:"unit"`
	Material   *Material `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
}
