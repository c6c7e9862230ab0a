package main

// Run database migrations:
//   go run ./cmd/migrate
//   go run ./cmd/migrate --database-url sqlite://./data/tracker.db

import (
	"context"
	"log"
	"os"

	"github.com/spf13/pflag"

	"jobtracker-backend/internal/shared/config"
	"jobtracker-backend/internal/shared/storage/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	databaseURL := pflag.String("database-url", cfg.DatabaseURL, "database to migrate (postgres:// or sqlite://)")
	pflag.Parse()

	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultCLIOptions())
	sqlDB, dialect, err := db.Connect(ctx, *databaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	log.Printf("migrations applied (%s)", dialect)
}
