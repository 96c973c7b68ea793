// Package formulation computes lye, water and cost figures for a recipe's
// oil lines. Every function here is total over arbitrary input: the
// calculator runs on each keystroke of a live editing form, so unresolved
// material references, missing quantities and unknown units contribute zero
// instead of failing.
package formulation

import (
	"math"

	"github.com/soapyfluffs/soapmaker-web/internal/units"
	"github.com/soapyfluffs/soapmaker-web/models"
)

// MaterialIndex resolves oil-line material references by id.
type MaterialIndex map[uint]models.Material

// IndexMaterials builds a MaterialIndex from a materials snapshot.
func IndexMaterials(materials []models.Material) MaterialIndex {
	index := make(MaterialIndex, len(materials))
	for _, material := range materials {
		index[material.ID] = material
	}
	return index
}

// Lye returns the lye mass in grams required to saponify the given oil
// lines, reduced by the superfat percentage. Superfat is applied
// arithmetically without clamping. The result is rounded to two decimals.
func Lye(oils []models.RecipeOil, materials MaterialIndex, superFat float64) float64 {
	total := 0.0
	for _, oil := range oils {
		grams, material, ok := resolveOilGrams(oil, materials)
		if !ok {
			continue
		}
		total += grams * material.SAPValue
	}
	total *= 1 - superFat/100
	return Round2(total)
}

// Water returns the water mass in grams used to dissolve the lye, derived
// from the water-to-lye ratio percentage.
func Water(oils []models.RecipeOil, materials MaterialIndex, waterRatio, superFat float64) float64 {
	lye := Lye(oils, materials, superFat)
	return lye * (waterRatio / 100)
}

// Cost returns the total formulation cost: material cost (stored per
// kilogram, normalized to grams) plus labor. Lines with an unresolved
// material or no cost contribute zero. Rounded to two decimals.
func Cost(recipe models.Recipe, materials MaterialIndex) float64 {
	materialCost := 0.0
	for _, oil := range recipe.Oils {
		grams, material, ok := resolveOilGrams(oil, materials)
		if !ok {
			continue
		}
		materialCost += grams * (material.Cost / 1000)
	}

	laborCost := (recipe.LaborTime / 60) * recipe.LaborCost
	return Round2(materialCost + laborCost)
}

// TotalOilWeight returns the summed oil mass in grams, skipping lines that
// cannot be resolved to a usable quantity.
func TotalOilWeight(oils []models.RecipeOil, materials MaterialIndex) float64 {
	total := 0.0
	for _, oil := range oils {
		grams, _, ok := resolveOilGrams(oil, materials)
		if !ok {
			continue
		}
		total += grams
	}
	return Round2(total)
}

// resolveOilGrams normalizes an oil line to grams. It reports false for any
// line that cannot contribute: dangling material reference, non-positive or
// non-finite weight, or an unregistered unit.
func resolveOilGrams(oil models.RecipeOil, materials MaterialIndex) (float64, models.Material, bool) {
	material, ok := materials[oil.MaterialID]
	if !ok {
		return 0, models.Material{}, false
	}
	if oil.Weight <= 0 || math.IsNaN(oil.Weight) || math.IsInf(oil.Weight, 0) {
		return 0, models.Material{}, false
	}

	unit := oil.Unit
	if unit == "" {
		unit = units.Gram
	}
	grams, err := units.Convert(oil.Weight, unit, units.Gram)
	if err != nil {
		return 0, models.Material{}, false
	}
	return grams, material, true
}

// Round2 rounds a value to two decimal places for display.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
