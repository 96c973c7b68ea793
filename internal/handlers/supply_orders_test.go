package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/soapyfluffs/soapmaker-web/models"
)

func TestSupplyOrderCreateAppliesDefaults(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	body := bytes.NewBufferString(`{"material_ref":"Olive Oil","quantity":25}`)
	req := httptest.NewRequest(http.MethodPost, "/api/supply-orders", body)
	w := httptest.NewRecorder()
	SupplyOrderResource(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created models.SupplyOrder
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Status != "pending" {
		t.Fatalf("status = %q, want pending", created.Status)
	}
	if created.Unit != "unit" {
		t.Fatalf("unit = %q, want unit", created.Unit)
	}
	if created.Date != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("date = %q, want today", created.Date)
	}
}

func TestSupplyOrderCreateRequiresMaterialRef(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	body := bytes.NewBufferString(`{"quantity":25}`)
	req := httptest.NewRequest(http.MethodPost, "/api/supply-orders", body)
	w := httptest.NewRecorder()
	SupplyOrderResource(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestSupplyOrderUpdateAndDelete(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	order := models.SupplyOrder{MaterialRef: "Shea Butter", Quantity: 10, Unit: "kg", Status: "pending", Date: "2024-02-01"}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed supply order: %v", err)
	}

	body := bytes.NewBufferString(`{"material_ref":"Shea Butter","quantity":10,"unit":"kg","status":"received","date":"2024-02-01"}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/supply-orders/%d", order.ID), body)
	w := httptest.NewRecorder()
	SupplyOrderResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.SupplyOrder
	if err := db.First(&updated, order.ID).Error; err != nil {
		t.Fatalf("failed to reload supply order: %v", err)
	}
	if updated.Status != "received" {
		t.Fatalf("status = %q, want received", updated.Status)
	}

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/supply-orders/%d", order.ID), nil)
	w = httptest.NewRecorder()
	SupplyOrderResource(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/supply-orders/%d", order.ID), nil)
	w = httptest.NewRecorder()
	SupplyOrderResource(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", w.Code)
	}
}
