package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/soapyfluffs/soapmaker-web/internal/formulation"
	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/models"
)

type recipeOilRequest struct {
	MaterialID uint    `json:"material_id"`
	Weight     float64 `json:"weight"`
	Unit       string  `json:"unit"`
}

type recipeRequest struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Oils         []recipeOilRequest `json:"oils"`
	WaterRatio   *float64           `json:"water_ratio"`
	SuperFat     *float64           `json:"super_fat"`
	Instructions string             `json:"instructions"`
	Yield        int                `json:"yield"`
	LaborTime    float64            `json:"labor_time"`
	LaborCost    float64            `json:"labor_cost"`
	Notes        string             `json:"notes"`
}

// recipeResponse embeds the stored recipe together with the derived
// formulation figures so clients never recompute them.
type recipeResponse struct {
	models.Recipe
	LyeWeight   float64 `json:"lye_weight"`
	WaterWeight float64 `json:"water_weight"`
	TotalCost   float64 `json:"total_cost"`
	OilWeight   float64 `json:"oil_weight"`
}

// RecipeResource handles REST-style interactions for recipes. Oil lines are
// replaced wholesale on update rather than patched individually.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	id, _, ok := resourceID(r, "/api/recipes")
	if !ok {
		http.NotFound(w, r)
		return
	}

	if id == 0 {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r)
		case http.MethodPost:
			createRecipe(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		showRecipe(w, r, id)
	case http.MethodPut:
		updateRecipe(w, r, id)
	case http.MethodDelete:
		deleteRecipe(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var recipes []models.Recipe
	if err := database.WithContext(ctx).Preload("Oils").Order("name asc").Find(&recipes).Error; err != nil {
		applog.Error(ctx, "failed to list recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
		return
	}

	index, err := loadMaterialIndex(r)
	if err != nil {
		applog.Error(ctx, "failed to load materials for recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
		return
	}

	responses := make([]recipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		responses = append(responses, buildRecipeResponse(recipe, index))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showRecipe(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	var recipe models.Recipe
	err := database.WithContext(ctx).Preload("Oils").Preload("Oils.Material").First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load recipe", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	index, err := loadMaterialIndex(r)
	if err != nil {
		applog.Error(ctx, "failed to load materials for recipe", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	writeJSON(w, http.StatusOK, buildRecipeResponse(recipe, index))
}

func createRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload recipeRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid recipe payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	settings, err := loadSettings(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load settings for recipe defaults", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load settings")
		return
	}

	recipe, errMsg := buildRecipe(payload, settings)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}

	if err := database.WithContext(ctx).Create(&recipe).Error; err != nil {
		applog.Error(ctx, "failed to create recipe", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to save recipe")
		return
	}

	index, err := loadMaterialIndex(r)
	if err != nil {
		applog.Error(ctx, "failed to load materials after recipe create", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}
	writeJSON(w, http.StatusCreated, buildRecipeResponse(recipe, index))
}

func updateRecipe(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()

	var recipe models.Recipe
	if err := database.WithContext(ctx).Preload("Oils").First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load recipe for update", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	var payload recipeRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid recipe payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	settings, err := loadSettings(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load settings for recipe update", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load settings")
		return
	}

	updated, errMsg := buildRecipe(payload, settings)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}
	updated.ID = recipe.ID
	updated.CreatedAt = recipe.CreatedAt

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeOil{}).Error; err != nil {
			return err
		}
		return tx.Save(&updated).Error
	})
	if err != nil {
		applog.Error(ctx, "failed to update recipe", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to save recipe")
		return
	}

	index, err := loadMaterialIndex(r)
	if err != nil {
		applog.Error(ctx, "failed to load materials after recipe update", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}
	writeJSON(w, http.StatusOK, buildRecipeResponse(updated, index))
}

func deleteRecipe(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("recipe_id = ?", id).Delete(&models.RecipeOil{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to delete recipe", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CalculateRecipe computes formulation figures for an unsaved recipe draft.
// The endpoint is tolerant by design: oil lines that cannot be resolved
// contribute zero so a half-filled form still gets an answer.
func CalculateRecipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	ctx := r.Context()

	var payload recipeRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid calculation payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	settings, err := loadSettings(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load settings for calculation", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load settings")
		return
	}

	recipe := draftRecipe(payload, settings)
	index, err := loadMaterialIndex(r)
	if err != nil {
		applog.Error(ctx, "failed to load materials for calculation", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load materials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{
		"lye_weight":   formulation.Lye(recipe.Oils, index, recipe.SuperFat),
		"water_weight": formulation.Water(recipe.Oils, index, recipe.WaterRatio, recipe.SuperFat),
		"total_cost":   formulation.Cost(recipe, index),
		"oil_weight":   formulation.TotalOilWeight(recipe.Oils, index),
	})
}

func buildRecipe(payload recipeRequest, settings models.Settings) (models.Recipe, string) {
	if strings.TrimSpace(payload.Name) == "" {
		return models.Recipe{}, "name is required"
	}
	return draftRecipe(payload, settings), ""
}

// draftRecipe assembles a recipe from a request without validation, filling
// water ratio and superfat from workshop defaults when omitted.
func draftRecipe(payload recipeRequest, settings models.Settings) models.Recipe {
	recipe := models.Recipe{
		Name:         strings.TrimSpace(payload.Name),
		Description:  payload.Description,
		WaterRatio:   settings.DefaultWaterRatio,
		SuperFat:     settings.DefaultSuperFat,
		Instructions: payload.Instructions,
		Yield:        payload.Yield,
		LaborTime:    payload.LaborTime,
		LaborCost:    payload.LaborCost,
		Notes:        payload.Notes,
	}
	if payload.WaterRatio != nil {
		recipe.WaterRatio = *payload.WaterRatio
	}
	if payload.SuperFat != nil {
		recipe.SuperFat = *payload.SuperFat
	}
	if recipe.LaborCost == 0 {
		recipe.LaborCost = settings.LaborCostPerHour
	}

	for _, oil := range payload.Oils {
		recipe.Oils = append(recipe.Oils, models.RecipeOil{
			MaterialID: oil.MaterialID,
			Weight:     oil.Weight,
			Unit:       strings.TrimSpace(oil.Unit),
		})
	}
	return recipe
}

func buildRecipeResponse(recipe models.Recipe, index formulation.MaterialIndex) recipeResponse {
	recipe.TotalWeight = formulation.TotalOilWeight(recipe.Oils, index)
	return recipeResponse{
		Recipe:      recipe,
		LyeWeight:   formulation.Lye(recipe.Oils, index, recipe.SuperFat),
		WaterWeight: formulation.Water(recipe.Oils, index, recipe.WaterRatio, recipe.SuperFat),
		TotalCost:   formulation.Cost(recipe, index),
		OilWeight:   recipe.TotalWeight,
	}
}

func loadMaterialIndex(r *http.Request) (formulation.MaterialIndex, error) {
	var materials []models.Material
	if err := database.WithContext(r.Context()).Find(&materials).Error; err != nil {
		return nil, err
	}
	return formulation.IndexMaterials(materials), nil
}
