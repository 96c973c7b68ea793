package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soapyfluffs/soapmaker-web/models"
)

func TestDashboardCountsEntities(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)

	if err := db.Create(&models.Material{Name: "Olive Oil", Type: models.MaterialTypeOil, Unit: "g"}).Error; err != nil {
		t.Fatalf("failed to seed material: %v", err)
	}
	if err := db.Create(&models.Recipe{Name: "Castile"}).Error; err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = withSession(t, sm, req)
	w := httptest.NewRecorder()
	Dashboard(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dashboardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Materials != 1 || resp.Recipes != 1 {
		t.Fatalf("unexpected counts: %+v", resp)
	}
	if resp.Settings.DefaultWeightUnit != "g" {
		t.Fatalf("expected default settings in summary, got %+v", resp.Settings)
	}
}

func TestDashboardRejectsOtherPaths(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	Dashboard(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
