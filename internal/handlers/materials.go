package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/internal/units"
	"github.com/soapyfluffs/soapmaker-web/models"
)

type materialRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	SAPValue float64 `json:"sap_value"`
	Cost     float64 `json:"cost"`
	Unit     string  `json:"unit"`
	Stock    float64 `json:"stock"`
	Supplier string  `json:"supplier"`
	Notes    string  `json:"notes"`
}

// MaterialResource handles REST-style interactions for material records.
func MaterialResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "material request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	id, action, ok := resourceID(r, "/api/materials")
	if !ok {
		http.NotFound(w, r)
		return
	}

	if id == 0 {
		switch r.Method {
		case http.MethodGet:
			listMaterials(w, r)
		case http.MethodPost:
			createMaterial(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if action == "units" {
		materialUnits(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showMaterial(w, r, id)
	case http.MethodPut:
		updateMaterial(w, r, id)
	case http.MethodDelete:
		deleteMaterial(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listMaterials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var materials []models.Material
	if err := database.WithContext(ctx).Order("name asc").Find(&materials).Error; err != nil {
		applog.Error(ctx, "failed to list materials", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load materials")
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

func showMaterial(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	var material models.Material
	if err := database.WithContext(ctx).First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load material", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load material")
		return
	}
	writeJSON(w, http.StatusOK, material)
}

// materialUnits returns the unit vocabulary for the material's type; the
// first symbol is the default selection for new entries.
func materialUnits(w http.ResponseWriter, r *http.Request, id uint) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	var material models.Material
	if err := database.WithContext(ctx).First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load material for units", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load material")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"units":   units.ForCategory(material.Type),
		"default": units.DefaultForCategory(material.Type),
	})
}

func createMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload materialRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid material payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	material, errMsg := buildMaterial(payload)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}

	if err := database.WithContext(ctx).Create(&material).Error; err != nil {
		applog.Error(ctx, "failed to create material", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to save material")
		return
	}

	writeJSON(w, http.StatusCreated, material)
}

func updateMaterial(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()

	var material models.Material
	if err := database.WithContext(ctx).First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load material for update", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load material")
		return
	}

	var payload materialRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid material payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, errMsg := buildMaterial(payload)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}

	updated.ID = material.ID
	updated.CreatedAt = material.CreatedAt
	if err := database.WithContext(ctx).Save(&updated).Error; err != nil {
		applog.Error(ctx, "failed to update material", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to save material")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// deleteMaterial removes a material. Recipe oil lines referencing it are
// left alone; calculations treat the dangling reference as contributing
// zero.
func deleteMaterial(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	result := database.WithContext(ctx).Delete(&models.Material{}, id)
	if result.Error != nil {
		applog.Error(ctx, "failed to delete material", "error", result.Error, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete material")
		return
	}
	if result.RowsAffected == 0 {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// buildMaterial validates and normalizes a material payload. The unit must
// belong to the vocabulary for the material's type.
func buildMaterial(payload materialRequest) (models.Material, string) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return models.Material{}, "name is required"
	}
	if payload.SAPValue < 0 {
		return models.Material{}, "sap_value must not be negative"
	}
	if payload.Cost < 0 {
		return models.Material{}, "cost must not be negative"
	}
	if payload.Stock < 0 {
		return models.Material{}, "stock must not be negative"
	}

	materialType := models.NormalizeMaterialType(payload.Type)
	unit := strings.TrimSpace(payload.Unit)
	if unit == "" {
		unit = units.DefaultForCategory(materialType)
	} else if !units.InCategory(unit, materialType) {
		return models.Material{}, fmt.Sprintf("unit %q is not valid for %s materials", unit, materialType)
	}

	return models.Material{
		Name:     name,
		Type:     materialType,
		SAPValue: payload.SAPValue,
		Cost:     payload.Cost,
		Unit:     unit,
		Stock:    payload.Stock,
		Supplier: strings.TrimSpace(payload.Supplier),
		Notes:    strings.TrimSpace(payload.Notes),
	}, ""
}
