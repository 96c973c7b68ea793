package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/internal/shopify"
	"github.com/soapyfluffs/soapmaker-web/models"
)

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	SKU         string  `json:"sku"`
	RecipeID    *uint   `json:"recipe_id"`
	Status      string  `json:"status"`
}

type productResponse struct {
	models.Product
	Warning string `json:"warning,omitempty"`
}

// productSyncer pushes a product to the remote storefront. Satisfied by
// *shopify.Client; swappable in tests.
type productSyncer interface {
	SyncProduct(ctx context.Context, product *models.Product) (string, error)
}

// shopifyDefaults carries deploy-time storefront credentials. The settings
// row takes precedence; these fill in only when its fields are blank.
var shopifyDefaults struct {
	Domain      string
	AccessToken string
}

// ConfigureShopify installs deploy-time storefront credentials used as a
// fallback when the settings record carries none.
func ConfigureShopify(domain, accessToken string) {
	shopifyDefaults.Domain = strings.TrimSpace(domain)
	shopifyDefaults.AccessToken = strings.TrimSpace(accessToken)
}

var newProductSyncer = func(settings models.Settings) (productSyncer, error) {
	domain := strings.TrimSpace(settings.ShopifyDomain)
	if domain == "" {
		domain = shopifyDefaults.Domain
	}
	token := strings.TrimSpace(settings.ShopifyAccessToken)
	if token == "" {
		token = shopifyDefaults.AccessToken
	}
	return shopify.New(shopify.Config{
		Domain:      domain,
		AccessToken: token,
	})
}

// ProductResource handles REST-style interactions for products, including
// the storefront sync action at /api/products/{id}/sync.
func ProductResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	id, action, ok := resourceID(r, "/api/products")
	if !ok {
		http.NotFound(w, r)
		return
	}

	if id == 0 {
		switch r.Method {
		case http.MethodGet:
			listProducts(w, r)
		case http.MethodPost:
			createProduct(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if action == "sync" {
		syncProduct(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showProduct(w, r, id)
	case http.MethodPut:
		updateProduct(w, r, id)
	case http.MethodDelete:
		deleteProduct(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var products []models.Product
	if err := database.WithContext(ctx).Order("name asc").Find(&products).Error; err != nil {
		applog.Error(ctx, "failed to list products", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func showProduct(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	var product models.Product
	if err := database.WithContext(ctx).Preload("Recipe").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load product", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func createProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload productRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid product payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	product, errMsg := buildProduct(payload)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}

	warning := duplicateSKUWarning(ctx, product.SKU, 0)
	if err := database.WithContext(ctx).Create(&product).Error; err != nil {
		applog.Error(ctx, "failed to create product", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to save product")
		return
	}

	writeJSON(w, http.StatusCreated, productResponse{Product: product, Warning: warning})
}

func updateProduct(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()

	var product models.Product
	if err := database.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load product for update", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load product")
		return
	}

	var payload productRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid product payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, errMsg := buildProduct(payload)
	if errMsg != "" {
		writeJSONError(w, http.StatusBadRequest, errMsg)
		return
	}
	updated.ID = product.ID
	updated.CreatedAt = product.CreatedAt
	updated.ShopifyID = product.ShopifyID

	warning := duplicateSKUWarning(ctx, updated.SKU, updated.ID)
	if err := database.WithContext(ctx).Save(&updated).Error; err != nil {
		applog.Error(ctx, "failed to update product", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to save product")
		return
	}

	writeJSON(w, http.StatusOK, productResponse{Product: updated, Warning: warning})
}

func deleteProduct(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	result := database.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		applog.Error(ctx, "failed to delete product", "error", result.Error, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete product")
		return
	}
	if result.RowsAffected == 0 {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// syncProduct pushes the product to the configured storefront and records
// the remote id on success.
func syncProduct(w http.ResponseWriter, r *http.Request, id uint) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	var product models.Product
	if err := database.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load product for sync", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load product")
		return
	}

	settings, err := loadSettings(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load settings for sync", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load settings")
		return
	}

	syncer, err := newProductSyncer(settings)
	if err != nil {
		applog.Debug(ctx, "storefront not configured", "error", err)
		writeJSONError(w, http.StatusUnprocessableEntity, "shopify is not configured")
		return
	}

	remoteID, err := syncer.SyncProduct(ctx, &product)
	if err != nil {
		applog.Error(ctx, "product sync failed", "error", err, "id", id)
		writeJSONError(w, http.StatusBadGateway, "unable to sync product")
		return
	}

	product.ShopifyID = remoteID
	if err := database.WithContext(ctx).Save(&product).Error; err != nil {
		applog.Error(ctx, "failed to record remote product id", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to save product")
		return
	}

	applog.Info(ctx, "product synced", "id", id, "shopify_id", remoteID)
	writeJSON(w, http.StatusOK, product)
}

func buildProduct(payload productRequest) (models.Product, string) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return models.Product{}, "name is required"
	}
	if payload.Price < 0 || payload.Cost < 0 {
		return models.Product{}, "price and cost must not be negative"
	}

	weight := payload.Weight
	if weight <= 0 {
		weight = 100
	}

	return models.Product{
		Name:        name,
		Description: payload.Description,
		Weight:      weight,
		Price:       payload.Price,
		Cost:        payload.Cost,
		SKU:         strings.TrimSpace(payload.SKU),
		RecipeID:    payload.RecipeID,
		Status:      models.NormalizeProductStatus(payload.Status),
	}, ""
}

// duplicateSKUWarning reports an advisory warning when another product
// already carries the same SKU. Duplicates are allowed but surfaced.
func duplicateSKUWarning(ctx context.Context, sku string, excludeID uint) string {
	if sku == "" {
		return ""
	}
	var count int64
	query := database.WithContext(ctx).Model(&models.Product{}).Where("sku = ?", sku)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		applog.Error(ctx, "failed to check sku uniqueness", "error", err, "sku", sku)
		return ""
	}
	if count > 0 {
		return "another product already uses SKU " + sku
	}
	return ""
}
