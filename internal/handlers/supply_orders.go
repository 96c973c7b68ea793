package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/models"
)

type supplyOrderRequest struct {
	OrderNumber string  `json:"order_number"`
	MaterialRef string  `json:"material_ref"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Supplier    string  `json:"supplier"`
	Date        string  `json:"date"`
	Cost        float64 `json:"cost"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
}

// SupplyOrderResource handles REST-style interactions for supply orders.
func SupplyOrderResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	id, _, ok := resourceID(r, "/api/supply-orders")
	if !ok {
		http.NotFound(w, r)
		return
	}

	if id == 0 {
		switch r.Method {
		case http.MethodGet:
			listSupplyOrders(w, r)
		case http.MethodPost:
			createSupplyOrder(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		showSupplyOrder(w, r, id)
	case http.MethodPut:
		updateSupplyOrder(w, r, id)
	case http.MethodDelete:
		deleteSupplyOrder(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listSupplyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var orders []models.SupplyOrder
	if err := database.WithContext(ctx).Order("date desc").Find(&orders).Error; err != nil {
		applog.Error(ctx, "failed to list supply orders", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load supply orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func showSupplyOrder(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	var order models.SupplyOrder
	if err := database.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load supply order", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load supply order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func createSupplyOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload supplyOrderRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid supply order payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	order, errMsg := buildSupplyOrder(payload)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}

	if err := database.WithContext(ctx).Create(&order).Error; err != nil {
		applog.Error(ctx, "failed to create supply order", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to save supply order")
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func updateSupplyOrder(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()

	var order models.SupplyOrder
	if err := database.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load supply order for update", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load supply order")
		return
	}

	var payload supplyOrderRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid supply order payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, errMsg := buildSupplyOrder(payload)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}
	updated.ID = order.ID
	updated.CreatedAt = order.CreatedAt

	if err := database.WithContext(ctx).Save(&updated).Error; err != nil {
		applog.Error(ctx, "failed to update supply order", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to save supply order")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func deleteSupplyOrder(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	result := database.WithContext(ctx).Delete(&models.SupplyOrder{}, id)
	if result.Error != nil {
		applog.Error(ctx, "failed to delete supply order", "error", result.Error, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete supply order")
		return
	}
	if result.RowsAffected == 0 {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func buildSupplyOrder(payload supplyOrderRequest) (models.SupplyOrder, string) {
	materialRef := strings.TrimSpace(payload.MaterialRef)
	if materialRef == "" {
		return models.SupplyOrder{}, "material_ref is required"
	}
	if payload.Quantity < 0 || payload.Cost < 0 {
		return models.SupplyOrder{}, "quantity and cost must not be negative"
	}

	unit := strings.TrimSpace(payload.Unit)
	if unit == "" {
		unit = "unit"
	}

	status := strings.ToLower(strings.TrimSpace(payload.Status))
	if status == "" {
		status = "pending"
	}

	date := strings.TrimSpace(payload.Date)
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	return models.SupplyOrder{
		OrderNumber: strings.TrimSpace(payload.OrderNumber),
		MaterialRef: materialRef,
		Quantity:    payload.Quantity,
		Unit:        unit,
		Supplier:    strings.TrimSpace(payload.Supplier),
		Date:        date,
		Cost:        payload.Cost,
		Status:      status,
		Notes:       payload.Notes,
	}, ""
}
