package handlers

import (
	"net/http"
	"testing"

	"github.com/alexedwards/scs/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/soapyfluffs/soapmaker-web/models"
)

func withTestDatabase(t *testing.T) (*gorm.DB, func()) {
	t.Helper()
	original := database
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Material{},
		&models.Recipe{},
		&models.RecipeOil{},
		&models.Product{},
		&models.Batch{},
		&models.QualityCheck{},
		&models.BatchDocument{},
		&models.SupplyOrder{},
		&models.Settings{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	database = db
	return db, func() {
		database = original
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func withTestSessionManager(t *testing.T) (*scs.SessionManager, func()) {
	t.Helper()
	original := sessionManager
	sm := scs.New()
	sessionManager = sm
	return sm, func() {
		sessionManager = original
	}
}

func withSession(t *testing.T, sm *scs.SessionManager, req *http.Request) *http.Request {
	t.Helper()
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}
	return req.WithContext(ctx)
}

func TestResourceID(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantID     uint
		wantAction string
		wantOK     bool
	}{
		{name: "collection", path: "/api/materials", wantID: 0, wantOK: true},
		{name: "collection trailing slash", path: "/api/materials/", wantID: 0, wantOK: true},
		{name: "record", path: "/api/materials/42", wantID: 42, wantOK: true},
		{name: "record action", path: "/api/materials/42/units", wantID: 42, wantAction: "units", wantOK: true},
		{name: "non numeric id", path: "/api/materials/abc", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, tc.path, nil)
			if err != nil {
				t.Fatalf("failed to build request: %v", err)
			}
			id, action, ok := resourceID(req, "/api/materials")
			if ok != tc.wantOK {
				t.Fatalf("resourceID(%q) ok = %v, want %v", tc.path, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if id != tc.wantID {
				t.Fatalf("resourceID(%q) id = %d, want %d", tc.path, id, tc.wantID)
			}
			if action != tc.wantAction {
				t.Fatalf("resourceID(%q) action = %q, want %q", tc.path, action, tc.wantAction)
			}
		})
	}
}
