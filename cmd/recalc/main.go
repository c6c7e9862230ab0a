package main

// Rebuild every daily progress row from the stored applications:
//   go run ./cmd/recalc

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"jobtracker-backend/internal/bootstrap"
	"jobtracker-backend/internal/shared/config"
	"jobtracker-backend/internal/shared/storage/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	databaseURL := pflag.String("database-url", cfg.DatabaseURL, "database holding the applications")
	timeout := pflag.Duration("timeout", 5*time.Minute, "abort the sweep after this long")
	pflag.Parse()
	cfg.DatabaseURL = *databaseURL

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	app, err := bootstrap.Build(ctx, cfg, bootstrap.Options{
		DBOptions:  db.DefaultCLIOptions(),
		SkipRouter: true,
	})
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	days, err := app.Aggregator.RecalculateAll(ctx)
	if err != nil {
		log.Printf("recalculate: %v", err)
		os.Exit(1)
	}
	log.Printf("recalculated %d days", days)
}
