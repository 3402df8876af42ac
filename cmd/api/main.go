// Package main is the entry point for the library API server.
// It wires together configuration, the database connection, the property
// mapping registry and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/rsen253/library-api/internal/config"
	"github.com/rsen253/library-api/internal/data"
	"github.com/rsen253/library-api/internal/query"
	"github.com/rsen253/library-api/internal/validator"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
)

// appVersion is the current version of the API, shown in logs.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config   config.Config   // Runtime configuration from file and environment
	logger   *slog.Logger    // Structured logger that writes to stdout
	models   data.Models     // Database model layer for all tables
	registry *query.Registry // Write-once property mapping registry, read-only after startup
}

// main is the application entry point.
// It loads configuration, opens the database, registers the property
// mappings, wires up dependencies, and starts the HTTP server.
func main() {
	var configPath string
	flag.StringVar(&configPath, "config", ".", "Directory searched for config.yaml")
	flag.Parse()

	// Create a structured logger that writes human-readable text to stdout.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	settings, err := config.Load(configPath)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if !validator.In(settings.Server.Environment, "development", "staging", "production") {
		logger.Error("unknown environment", "environment", settings.Server.Environment)
		os.Exit(1)
	}

	// Open and verify the database connection pool.
	db, err := openDB(settings)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close() // Close the pool cleanly when main() returns.

	logger.Info("database connection pool established")

	// Register the sortable-field translations for every view/entity pair.
	// A failure here is a wiring bug and aborts startup: requests must never
	// run against an incomplete registry.
	registry, err := newMappingRegistry()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	// Bundle all shared dependencies into a single struct.
	appInstance := &applicationDependencies{
		config:   settings,
		logger:   logger,
		models:   data.NewModels(db),
		registry: registry,
	}

	logger.Info("starting API", "version", appVersion, "environment", settings.Server.Environment)

	err = appInstance.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// newMappingRegistry builds the read-only property mapping registry used to
// validate and translate client order-by expressions.
func newMappingRegistry() (*query.Registry, error) {
	registry := query.NewRegistry()
	if err := registry.Register(data.AuthorViewType, data.AuthorEntityType, data.AuthorSortMappings()); err != nil {
		return nil, err
	}
	if err := registry.Register(data.BookViewType, data.BookEntityType, data.BookSortMappings()); err != nil {
		return nil, err
	}
	return registry, nil
}

// openDB opens a PostgreSQL connection pool using the configured DSN, then
// pings the database with a 5-second timeout to confirm it is reachable.
// Returns the pool on success, or an error if the connection cannot be established.
func openDB(settings config.Config) (*sql.DB, error) {
	// sql.Open only validates the DSN format; it does not actually connect yet.
	db, err := sql.Open("postgres", settings.DB.DSN)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// PingContext performs a real round-trip to verify the database is reachable.
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
