package main

// @title Autocomplete Service API
// @version 1.0.0
// @description Geographic autocomplete and place-indexing service: text
// @description search over administrative areas, streets, addresses,
// @description points of interest and public transport stops, with
// @description prefix-first/fuzzy-fallback ranking.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/munin-search/autocomplete/docs"
	"github.com/munin-search/autocomplete/internal/autocomplete"
	"github.com/munin-search/autocomplete/internal/backend/esclient"
	"github.com/munin-search/autocomplete/internal/config"
	httpDelivery "github.com/munin-search/autocomplete/internal/delivery/http"
	"github.com/munin-search/autocomplete/internal/delivery/http/handler"
	"github.com/munin-search/autocomplete/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Autocomplete Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	backendClient := esclient.New(cfg.Backend.BaseURL, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	status, err := backendClient.Status(ctx)
	cancel()
	if err != nil {
		log.Fatal("Search backend health check failed", zap.Error(err))
	}
	log.Info("Search backend healthy", zap.String("health", status.Health), zap.String("version", status.Version))

	orchestrator := autocomplete.New(backendClient, cfg.Ranking.ToSettings(), log)
	autocompleteHandler := handler.NewAutocompleteHandler(orchestrator, log)

	server := httpDelivery.NewServer(cfg, log, autocompleteHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
