/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Steinalytics report API server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (viper: defaults, optional file, environment)
  3. Configure logging (logrus)
  4. Initialize the SQLite run registry and the export directory
  5. Create the handler with its dependencies
  6. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Optional configuration file path. All settings also come from
           STEINALYTICS_* environment variables (e.g. STEINALYTICS_PORT).

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Siyabongahenry/SteinalyticsReportAPI/api"
	"github.com/Siyabongahenry/SteinalyticsReportAPI/config"
	"github.com/Siyabongahenry/SteinalyticsReportAPI/export"
	"github.com/Siyabongahenry/SteinalyticsReportAPI/journal"
	"github.com/Siyabongahenry/SteinalyticsReportAPI/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "configuration file path (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	exporter, err := export.NewExporter(cfg.ExportDir)
	if err != nil {
		log.Fatalf("Failed to initialize export directory: %v", err)
	}

	// The holiday table is read-only and shared across requests for the
	// lifetime of the process.
	calendar := journal.NewSouthAfricaCalendar()

	handler := api.NewHandler(store, exporter, calendar,
		cfg.RulesPath, cfg.MaxUploadMB*1024*1024, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Server starting on http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
