package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/localnerve/lessonsync/internal/config"
	"github.com/localnerve/lessonsync/internal/logger"
	"github.com/localnerve/lessonsync/internal/server"
	"github.com/localnerve/lessonsync/internal/services"
	"github.com/localnerve/lessonsync/internal/store"
)

// @title lessonsync API
// @version 1.0.0
// @description Document store and sync API for the lessonsync learning platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/lessonsync
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()

	// Open the document store
	st, closeStore, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			lg.Warn("store close failed", "error", err)
		}
	}()

	app := server.New(services.New(st), lg, server.Options{
		BodyLimitMB: cfg.BodyLimitMB,
		AccessLog:   true,
		Metrics:     true,
		Swagger:     true,
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		lg.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	lg.Info("Starting server", "port", cfg.Port, "store", cfg.StoreBackend, "dataDir", cfg.DataDir)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	lg.Info("Server stopped")
}
