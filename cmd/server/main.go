package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"godchat/internal/config"
	"godchat/internal/llm"
	"godchat/internal/observability"
	"godchat/internal/policy"
	"godchat/internal/service"
	"godchat/internal/store"
	v1 "godchat/internal/transport/http/v1"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting godchat...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Store: %s", cfg.DatabaseDriver)
	log.Printf("Completion endpoint: %s (model %s)", cfg.CompletionURL, cfg.Model)

	ctx := context.Background()

	// Initialize transcript store
	var db store.Store
	switch cfg.DatabaseDriver {
	case "postgres":
		db, err = store.NewPostgresStore(ctx, cfg.DatabaseURL)
	default:
		db, err = store.NewSQLiteStore(cfg.DatabaseURL)
	}
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize completion gateway
	gateway := llm.NewClient(cfg.CompletionURL, cfg.CompletionAPIKey, cfg.Model, cfg.Temperature, cfg.CompletionTimeout)

	// Initialize transcript access policy
	policyContent := policy.DefaultPolicy
	if cfg.PolicyFile != "" {
		data, err := os.ReadFile(cfg.PolicyFile)
		if err != nil {
			log.Fatalf("Failed to read policy file: %v", err)
		}
		policyContent = string(data)
	}
	policyEngine, err := policy.NewEngine(ctx, policyContent)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize metrics and orchestrator
	metrics := observability.NewMetrics(cfg.MetricsNamespace)
	svc := service.New(db, gateway, cfg, metrics)

	// Initialize HTTP server
	h := v1.NewHandler(svc, policyEngine)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("godchat started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down godchat...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("godchat stopped")
}
