package handlers

import (
	"net/http"

	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/models"
)

type dashboardResponse struct {
	Materials     int64           `json:"materials"`
	Recipes       int64           `json:"recipes"`
	Products      int64           `json:"products"`
	Batches       int64           `json:"batches"`
	SupplyOrders  int64           `json:"supply_orders"`
	Settings      models.Settings `json:"settings"`
	PreferredUnit string          `json:"preferred_unit,omitempty"`
	LastImport    string          `json:"last_import,omitempty"`
}

// Dashboard summarises the workspace: entity counts, active defaults and
// the most recent import outcome for this session.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	ctx := r.Context()
	resp := dashboardResponse{
		PreferredUnit: sessionString(r, sessionPreferredUnitKey),
		LastImport:    sessionString(r, sessionImportSummaryKey),
	}

	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.Material{}, &resp.Materials},
		{&models.Recipe{}, &resp.Recipes},
		{&models.Product{}, &resp.Products},
		{&models.Batch{}, &resp.Batches},
		{&models.SupplyOrder{}, &resp.SupplyOrders},
	}
	for _, count := range counts {
		if err := database.WithContext(ctx).Model(count.model).Count(count.dest).Error; err != nil {
			applog.Error(ctx, "failed to count workspace entities", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to load workspace summary")
			return
		}
	}

	settings, err := loadSettings(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load settings for dashboard", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load settings")
		return
	}
	resp.Settings = settings

	writeJSON(w, http.StatusOK, resp)
}
