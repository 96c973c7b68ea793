package handlers

import (
	"net/http"
	"strings"

	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/internal/units"
	"github.com/soapyfluffs/soapmaker-web/models"
)

type settingsRequest struct {
	DefaultWeightUnit  string   `json:"default_weight_unit"`
	DefaultCurrency    string   `json:"default_currency"`
	LaborCostPerHour   *float64 `json:"labor_cost_per_hour"`
	DefaultSuperFat    *float64 `json:"default_super_fat"`
	DefaultWaterRatio  *float64 `json:"default_water_ratio"`
	ShopifyDomain      *string  `json:"shopify_domain"`
	ShopifyAccessToken *string  `json:"shopify_access_token"`
}

// SettingsResource reads and updates the workshop-wide defaults. The row is
// a singleton; PUT patches only the fields present in the payload so the
// Shopify token survives unrelated edits.
func SettingsResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	ctx := r.Context()

	settings, err := loadSettings(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load settings", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load settings")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, settings)
	case http.MethodPut:
		updateSettings(w, r, settings)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func updateSettings(w http.ResponseWriter, r *http.Request, settings models.Settings) {
	ctx := r.Context()

	var payload settingsRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid settings payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if unit := strings.TrimSpace(payload.DefaultWeightUnit); unit != "" {
		if !units.Known(unit) {
			writeJSONError(w, http.StatusBadRequest, "unknown weight unit")
			return
		}
		settings.DefaultWeightUnit = unit
	}
	if currency := strings.TrimSpace(payload.DefaultCurrency); currency != "" {
		settings.DefaultCurrency = strings.ToUpper(currency)
	}
	if payload.LaborCostPerHour != nil {
		if *payload.LaborCostPerHour < 0 {
			writeJSONError(w, http.StatusBadRequest, "labor_cost_per_hour must not be negative")
			return
		}
		settings.LaborCostPerHour = *payload.LaborCostPerHour
	}
	if payload.DefaultSuperFat != nil {
		settings.DefaultSuperFat = *payload.DefaultSuperFat
	}
	if payload.DefaultWaterRatio != nil {
		if *payload.DefaultWaterRatio < 0 {
			writeJSONError(w, http.StatusBadRequest, "default_water_ratio must not be negative")
			return
		}
		settings.DefaultWaterRatio = *payload.DefaultWaterRatio
	}
	if payload.ShopifyDomain != nil {
		settings.ShopifyDomain = strings.TrimSpace(*payload.ShopifyDomain)
	}
	if payload.ShopifyAccessToken != nil {
		settings.ShopifyAccessToken = strings.TrimSpace(*payload.ShopifyAccessToken)
	}

	if err := database.WithContext(ctx).Save(&settings).Error; err != nil {
		applog.Error(ctx, "failed to update settings", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to save settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
