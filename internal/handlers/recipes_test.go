package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soapyfluffs/soapmaker-web/models"
)

func seedCalculatorMaterials(t *testing.T) (models.Material, models.Material) {
	t.Helper()
	olive := models.Material{Name: "Olive Oil", Type: models.MaterialTypeOil, SAPValue: 0.135, Cost: 10, Unit: "g"}
	coconut := models.Material{Name: "Coconut Oil", Type: models.MaterialTypeOil, SAPValue: 0.183, Cost: 8, Unit: "g"}
	if err := database.Create(&olive).Error; err != nil {
		t.Fatalf("failed to seed olive oil: %v", err)
	}
	if err := database.Create(&coconut).Error; err != nil {
		t.Fatalf("failed to seed coconut oil: %v", err)
	}
	return olive, coconut
}

func TestCalculateRecipeWorkedExample(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	olive, coconut := seedCalculatorMaterials(t)

	payload := map[string]any{
		"name":        "Test Bar",
		"water_ratio": 38,
		"super_fat":   5,
		"oils": []map[string]any{
			{"material_id": olive.ID, "weight": 500, "unit": "g"},
			{"material_id": coconut.ID, "weight": 300, "unit": "g"},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/recipes/calculate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	CalculateRecipe(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]float64
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// 500*0.135 + 300*0.183 = 122.4; * 0.95 = 116.28
	if resp["lye_weight"] != 116.28 {
		t.Fatalf("lye_weight = %v, want 116.28", resp["lye_weight"])
	}
	if resp["oil_weight"] != 800 {
		t.Fatalf("oil_weight = %v, want 800", resp["oil_weight"])
	}
}

func TestCalculateRecipeUsesSettingsDefaults(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	olive, _ := seedCalculatorMaterials(t)

	settings := models.DefaultSettings()
	settings.DefaultSuperFat = 0
	settings.DefaultWaterRatio = 100
	if err := db.Create(&settings).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	payload := map[string]any{
		"name": "Defaults Bar",
		"oils": []map[string]any{
			{"material_id": olive.ID, "weight": 1000, "unit": "g"},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/recipes/calculate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	CalculateRecipe(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]float64
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["lye_weight"] != 135 {
		t.Fatalf("lye_weight = %v, want 135", resp["lye_weight"])
	}
	// 100% water ratio mirrors the lye weight exactly.
	if resp["water_weight"] != 135 {
		t.Fatalf("water_weight = %v, want 135", resp["water_weight"])
	}
}

func TestRecipeCreateComputesFigures(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	olive, _ := seedCalculatorMaterials(t)

	payload := map[string]any{
		"name":        "Castile",
		"water_ratio": 38,
		"super_fat":   5,
		"labor_time":  45,
		"labor_cost":  15,
		"oils": []map[string]any{
			{"material_id": olive.ID, "weight": 1000, "unit": "g"},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/recipes", bytes.NewReader(body))
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp recipeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == 0 {
		t.Fatal("expected created recipe to have an id")
	}
	// 1000*0.135*0.95 = 128.25
	if resp.LyeWeight != 128.25 {
		t.Fatalf("LyeWeight = %v, want 128.25", resp.LyeWeight)
	}
	if resp.WaterWeight != 48.735 {
		t.Fatalf("WaterWeight = %v, want 48.735", resp.WaterWeight)
	}
	// 1000g at 10/kg plus 45min at 15/h
	if resp.TotalCost != 21.25 {
		t.Fatalf("TotalCost = %v, want 21.25", resp.TotalCost)
	}
}

func TestRecipeUpdateReplacesOilLines(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	olive, coconut := seedCalculatorMaterials(t)

	recipe := models.Recipe{
		Name: "Original",
		Oils: []models.RecipeOil{
			{MaterialID: olive.ID, Weight: 500, Unit: "g"},
			{MaterialID: coconut.ID, Weight: 300, Unit: "g"},
		},
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}

	payload := map[string]any{
		"name": "Updated",
		"oils": []map[string]any{
			{"material_id": olive.ID, "weight": 1000, "unit": "g"},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/recipes/%d", recipe.ID), bytes.NewReader(body))
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var lineCount int64
	err = db.Model(&models.RecipeOil{}).
		Where("recipe_id = ? AND deleted_at IS NULL", recipe.ID).
		Count(&lineCount).Error
	if err != nil {
		t.Fatalf("failed to count oil lines: %v", err)
	}
	if lineCount != 1 {
		t.Fatalf("expected 1 live oil line after replace, got %d", lineCount)
	}
}

func TestRecipeCreateRequiresName(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodPost, "/api/recipes", bytes.NewBufferString(`{"name":"  "}`))
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
