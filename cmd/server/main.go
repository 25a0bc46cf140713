/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the tax service. Handles configuration, dependency
  wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Read environment configuration, apply command-line flag overrides
  2. Initialize the ledger store (in-memory, or SQLite when DB_PATH is set)
  3. Create the API handler and chi router
  4. Start the server with graceful shutdown

CONFIGURATION:
  PORT          HTTP server port (default: 8080)
  DB_PATH       SQLite database path; empty keeps the ledger in memory
  CORS_ORIGINS  Comma-separated allowed origins (default: *)

  Flags -port and -db override the environment.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the store
  4. Exit

EXAMPLES:
  # In-memory ledger (nothing survives a restart)
  ./server

  # Durable ledger
  ./server -db="./data/tax.db"

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
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

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/sgrubb/tax-service/api"
	"github.com/sgrubb/tax-service/ledger"
	memstore "github.com/sgrubb/tax-service/ledger/store"
	"github.com/sgrubb/tax-service/store/sqlite"
)

// Config is the environment-driven configuration.
type Config struct {
	Port        int      `envconfig:"PORT" default:"8080"`
	DBPath      string   `envconfig:"DB_PATH" default:""`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		logger.Fatal("failed to read configuration", zap.Error(err))
	}

	// Flags override the environment.
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path (empty = in-memory ledger)")
	flag.Parse()

	// Initialize store
	var store ledger.Store
	if *dbPath != "" {
		sqliteStore, err := sqlite.New(*dbPath)
		if err != nil {
			logger.Fatal("failed to initialize database", zap.Error(err))
		}
		defer sqliteStore.Close()
		store = sqliteStore
		logger.Info("using sqlite ledger", zap.String("path", *dbPath))
	} else {
		store = memstore.NewMemory()
		logger.Info("using in-memory ledger")
	}

	// Wire handler and router
	handler := api.NewHandler(ledger.New(store), logger)
	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.Int("port", *port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
