package handlers

import (
	"net/http"
	"strings"

	"github.com/soapyfluffs/soapmaker-web/internal/export"
	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/models"
)

// Export streams recipes or batches as a download. The kind is the final
// path segment: /api/export/recipes or /api/export/batches produce CSV,
// and a .json suffix switches to a JSON document of the same records.
func Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	ctx := r.Context()

	kind := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/export"), "/")
	asJSON := false
	if trimmed, found := strings.CutSuffix(kind, ".json"); found {
		kind = trimmed
		asJSON = true
	}

	switch kind {
	case "recipes":
		var recipes []models.Recipe
		if err := database.WithContext(ctx).Preload("Oils").Order("name asc").Find(&recipes).Error; err != nil {
			applog.Error(ctx, "failed to load recipes for export", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to export recipes")
			return
		}
		index, err := loadMaterialIndex(r)
		if err != nil {
			applog.Error(ctx, "failed to load materials for export", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to export recipes")
			return
		}
		if asJSON {
			responses := make([]recipeResponse, 0, len(recipes))
			for _, recipe := range recipes {
				responses = append(responses, buildRecipeResponse(recipe, index))
			}
			writeExportJSON(w, kind, responses)
			return
		}
		writeExportCSV(w, r, kind, export.RecipeRows(recipes, index))
	case "batches":
		var batches []models.Batch
		err := database.WithContext(ctx).
			Preload("Recipe").
			Preload("QualityChecks").
			Order("start_date desc").
			Find(&batches).Error
		if err != nil {
			applog.Error(ctx, "failed to load batches for export", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to export batches")
			return
		}
		if asJSON {
			writeExportJSON(w, kind, batches)
			return
		}
		writeExportCSV(w, r, kind, export.BatchRows(batches))
	default:
		http.NotFound(w, r)
	}
}

func writeExportCSV(w http.ResponseWriter, r *http.Request, kind string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+kind+`.csv"`)
	if err := export.WriteCSV(w, rows); err != nil {
		applog.Error(r.Context(), "failed to stream export", "error", err, "kind", kind)
	}
}

func writeExportJSON(w http.ResponseWriter, kind string, payload any) {
	w.Header().Set("Content-Disposition", `attachment; filename="`+kind+`.json"`)
	writeJSON(w, http.StatusOK, payload)
}
