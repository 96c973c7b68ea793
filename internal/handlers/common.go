package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/models"
)

const (
	sessionPreferredUnitKey = "workspace:preferred_unit"
	sessionImportSummaryKey = "import:last_summary"
)

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, db *gorm.DB) {
	sessionManager = sm
	database = db
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// resourceID splits "/api/<resource>/<id>[/<action>]" into its id and
// trailing action segment. An empty id means the collection itself.
func resourceID(r *http.Request, prefix string) (uint, string, bool) {
	path := strings.TrimPrefix(r.URL.Path, prefix)
	path = strings.Trim(path, "/")
	if path == "" {
		return 0, "", true
	}

	segments := strings.Split(path, "/")
	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		return 0, "", false
	}

	action := ""
	if len(segments) > 1 {
		action = segments[1]
	}
	return uint(idValue), action, true
}

func decodeJSON(r *http.Request, payload any) error {
	return json.NewDecoder(r.Body).Decode(payload)
}

func sessionPut(r *http.Request, key string, value any) {
	if sessionManager == nil {
		return
	}
	sessionManager.Put(r.Context(), key, value)
}

func sessionString(r *http.Request, key string) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.GetString(r.Context(), key)
}

// loadSettings returns the singleton settings row, creating it from the
// built-in defaults when absent.
func loadSettings(ctx context.Context) (models.Settings, error) {
	if database == nil {
		return models.Settings{}, gorm.ErrInvalidDB
	}

	var settings models.Settings
	err := database.WithContext(ctx).First(&settings).Error
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Settings{}, err
	}

	settings = models.DefaultSettings()
	if err := database.WithContext(ctx).Create(&settings).Error; err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}
