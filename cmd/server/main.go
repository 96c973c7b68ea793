package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gorm.io/gorm"

	"github.com/soapyfluffs/soapmaker-web/internal/config"
	"github.com/soapyfluffs/soapmaker-web/internal/db"
	"github.com/soapyfluffs/soapmaker-web/internal/db/mock"
	applog "github.com/soapyfluffs/soapmaker-web/internal/log"
	"github.com/soapyfluffs/soapmaker-web/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		log.Fatalf("invalid log level %q: %v", cfg.Logging.Level, err)
	}

	database, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	srv, err := server.New(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Shopify: server.ShopifyConfig{
			Domain:      cfg.Shopify.Domain,
			AccessToken: cfg.Shopify.AccessToken,
		},
		Database: database,
	})
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	go func() {
		log.Printf("starting http server on %s", cfg.Server.Addr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server encountered an error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	log.Println("shutting down http server")
	if err := srv.Stop(); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}

// openDatabase connects to the configured database, falling back to the
// seeded in-memory store when mocking is requested or no URL is set.
func openDatabase(cfg config.Config) (*gorm.DB, error) {
	if cfg.Database.UseMock || strings.TrimSpace(cfg.Database.URL) == "" {
		applog.Info(context.Background(), "using in-memory database with seed data")
		return mock.New(context.Background())
	}
	return db.Configure(cfg.Database)
}
