package server

import (
	"context"
	"net/http"

	"github.com/soapyfluffs/soapmaker-web/internal/handlers"
	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/api/materials", handlers.MaterialResource)
	mux.HandleFunc("/api/materials/", handlers.MaterialResource)
	applog.Debug(context.Background(), "route registered", "path", "/api/materials")
	mux.HandleFunc("/api/recipes/calculate", handlers.CalculateRecipe)
	mux.HandleFunc("/api/recipes", handlers.RecipeResource)
	mux.HandleFunc("/api/recipes/", handlers.RecipeResource)
	applog.Debug(context.Background(), "route registered", "path", "/api/recipes")
	mux.HandleFunc("/api/products", handlers.ProductResource)
	mux.HandleFunc("/api/products/", handlers.ProductResource)
	applog.Debug(context.Background(), "route registered", "path", "/api/products")
	mux.HandleFunc("/api/batches", handlers.BatchResource)
	mux.HandleFunc("/api/batches/", handlers.BatchResource)
	applog.Debug(context.Background(), "route registered", "path", "/api/batches")
	mux.HandleFunc("/api/supply-orders", handlers.SupplyOrderResource)
	mux.HandleFunc("/api/supply-orders/", handlers.SupplyOrderResource)
	applog.Debug(context.Background(), "route registered", "path", "/api/supply-orders")
	mux.HandleFunc("/api/settings", handlers.SettingsResource)
	applog.Debug(context.Background(), "route registered", "path", "/api/settings")
	mux.HandleFunc("/api/import", handlers.ImportCSV)
	applog.Debug(context.Background(), "route registered", "path", "/api/import")
	mux.HandleFunc("/api/export/", handlers.Export)
	applog.Debug(context.Background(), "route registered", "path", "/api/export/")
	mux.HandleFunc("/api/preferences", handlers.Preferences)
	applog.Debug(context.Background(), "route registered", "path", "/api/preferences")
	mux.HandleFunc("/", handlers.Dashboard)
	applog.Debug(context.Background(), "route registered", "path", "/")
	return mux
}
