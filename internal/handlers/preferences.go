package handlers

import (
	"net/http"
	"strings"

	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/internal/units"
)

type preferencesResponse struct {
	PreferredUnit string `json:"preferred_unit"`
	LastImport    string `json:"last_import,omitempty"`
}

// Preferences reads and updates per-session workspace preferences. These
// live in the session, not the database: each browser keeps its own view.
func Preferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, preferencesResponse{
			PreferredUnit: sessionString(r, sessionPreferredUnitKey),
			LastImport:    sessionString(r, sessionImportSummaryKey),
		})
	case http.MethodPut:
		var payload struct {
			PreferredUnit string `json:"preferred_unit"`
		}
		if err := decodeJSON(r, &payload); err != nil {
			applog.Debug(r.Context(), "invalid preferences payload", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}

		unit := strings.TrimSpace(payload.PreferredUnit)
		if unit != "" && !units.Known(unit) {
			writeJSONError(w, http.StatusBadRequest, "unknown unit")
			return
		}

		sessionPut(r, sessionPreferredUnitKey, unit)
		writeJSON(w, http.StatusOK, preferencesResponse{
			PreferredUnit: unit,
			LastImport:    sessionString(r, sessionImportSummaryKey),
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
