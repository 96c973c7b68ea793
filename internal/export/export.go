// Package export flattens recipes and batches into spreadsheet rows.
// Sub-lists (oil lines, quality checks) collapse into a single
// semicolon-joined cell so the output opens cleanly in any spreadsheet tool.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soapyfluffs/soapmaker-web/internal/formulation"
	"github.com/soapyfluffs/soapmaker-web/models"
)

const dateLayout = "2006-01-02"

// RecipeRows renders recipes as a header row plus one row per recipe.
// Oil lines resolve material names through the index; dangling references
// render as "unknown material".
func RecipeRows(recipes []models.Recipe, materials formulation.MaterialIndex) [][]string {
	rows := [][]string{{
		"name", "description", "oils", "water_ratio", "super_fat", "yield",
		"total_weight", "labor_time", "labor_cost", "instructions", "notes",
	}}

	for _, recipe := range recipes {
		oilParts := make([]string, 0, len(recipe.Oils))
		for _, oil := range recipe.Oils {
			name := "unknown material"
			if material, ok := materials[oil.MaterialID]; ok {
				name = material.Name
			}
			unit := oil.Unit
			if unit == "" {
				unit = "g"
			}
			oilParts = append(oilParts, fmt.Sprintf("%s: %s%s", name, formatFloat(oil.Weight), unit))
		}

		rows = append(rows, []string{
			recipe.Name,
			recipe.Description,
			strings.Join(oilParts, "; "),
			formatFloat(recipe.WaterRatio),
			formatFloat(recipe.SuperFat),
			strconv.Itoa(recipe.Yield),
			formatFloat(recipe.TotalWeight),
			formatFloat(recipe.LaborTime),
			formatFloat(recipe.LaborCost),
			recipe.Instructions,
			recipe.Notes,
		})
	}

	return rows
}

// BatchRows renders batches as a header row plus one row per batch. The
// recipe name must be resolved by the caller; batches whose recipe was
// deleted fall back to "unknown recipe".
func BatchRows(batches []models.Batch) [][]string {
	rows := [][]string{{
		"batch_number", "recipe", "start_date", "status", "yield",
		"actual_cost", "labor_hours", "quality_checks", "notes",
	}}

	for _, batch := range batches {
		recipeName := "unknown recipe"
		if batch.Recipe != nil {
			recipeName = batch.Recipe.Name
		}

		checkParts := make([]string, 0, len(batch.QualityChecks))
		for _, check := range batch.QualityChecks {
			checkParts = append(checkParts, fmt.Sprintf("%s: %s (%s)",
				check.Name, check.Value, check.Date.Format(dateLayout)))
		}

		startDate := ""
		if !batch.StartDate.IsZero() {
			startDate = batch.StartDate.Format(dateLayout)
		}

		rows = append(rows, []string{
			batch.BatchNumber,
			recipeName,
			startDate,
			batch.Status,
			strconv.Itoa(batch.Yield),
			formatFloat(batch.ActualCost),
			formatFloat(batch.LaborHours),
			strings.Join(checkParts, "; "),
			batch.Notes,
		})
	}

	return rows
}

// WriteCSV streams rows as CSV.
func WriteCSV(w io.Writer, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
