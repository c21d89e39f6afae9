// Health Check Report Tool prints how many health checks a store holds.
//
// Usage:
//
//	go run ./tools/healthcheck_report
//	go run ./tools/healthcheck_report -backend=sqlite -reset
//
// Configuration:
//
//	-backend: Optional. postgres, sqlite or redis (default: STORE_BACKEND)
//	-json:    Optional. Print the report as JSON
//	-reset:   Optional. Delete every stored health check before reporting
//
// The connection settings are read from the same environment variables as
// the server (POSTGRES_DSN, SQLITE_PATH, REDIS_ADDR, ...).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/patrickwarner/webapp/internal/config"
	"github.com/patrickwarner/webapp/internal/db"
	"github.com/patrickwarner/webapp/internal/reporting"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	var (
		backend = flag.String("backend", cfg.StoreBackend, "Store backend (postgres, sqlite, redis)")
		asJSON  = flag.Bool("json", false, "Print the report as JSON")
		reset   = flag.Bool("reset", false, "Delete all stored health checks first")
	)
	flag.Parse()
	cfg.StoreBackend = *backend

	store, err := db.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s store: %v\n", cfg.StoreBackend, err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *reset {
		if err := store.DeleteHealthChecks(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting health checks: %v\n", err)
			os.Exit(1)
		}
	}

	report, err := reporting.GenerateHealthReport(ctx, store, cfg.StoreBackend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := report.WriteText(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
}
