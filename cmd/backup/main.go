package main

// Export or import application snapshots:
//   go run ./cmd/backup export
//   go run ./cmd/backup import --file ./applications-export.json
//   go run ./cmd/backup import --key latest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"jobtracker-backend/internal/backup"
	"jobtracker-backend/internal/bootstrap"
	"jobtracker-backend/internal/shared/config"
	"jobtracker-backend/internal/shared/storage/db"
)

const usage = `usage: backup <export|import> [flags]

export   write a snapshot to the configured object store
import   load a snapshot or legacy export (--file path or --key key|latest)
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Printf("backup: %v", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n%s", usage)
	}
	cmd, args := args[0], args[1:]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := pflag.NewFlagSet("backup "+cmd, pflag.ContinueOnError)
	databaseURL := flags.String("database-url", cfg.DatabaseURL, "database holding the applications")
	store := flags.String("object-store", cfg.ObjectStoreType, "snapshot store: local or s3")
	file := flags.String("file", "", "import: read the export from this path")
	key := flags.String("key", "", "import: object store key, or \"latest\"")
	batch := flags.Int("batch-size", backup.DefaultBatchSize, "import: records per batch")
	if err := flags.Parse(args); err != nil {
		return err
	}
	cfg.DatabaseURL = *databaseURL
	cfg.ObjectStoreType = *store

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, bootstrap.Options{
		DBOptions:  db.DefaultCLIOptions(),
		SkipRouter: true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap build: %w", err)
	}
	defer app.Close()
	if app.DB == nil {
		return fmt.Errorf("DATABASE_URL is required")
	}
	svc := app.BackupService
	svc.BatchSize = *batch

	switch cmd {
	case "export":
		k, n, err := svc.Export(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "exported %s (%d bytes)\n", k, n)
		return nil
	case "import":
		res, err := importFrom(ctx, svc, *file, *key)
		if err != nil {
			return err
		}
		return json.NewEncoder(out).Encode(res)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func importFrom(ctx context.Context, svc *backup.Service, file, key string) (backup.ImportResult, error) {
	switch {
	case file != "" && key != "":
		return backup.ImportResult{}, fmt.Errorf("--file and --key are mutually exclusive")
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return backup.ImportResult{}, err
		}
		defer f.Close()
		return svc.Import(ctx, f)
	case key == "latest":
		latest, err := svc.Latest(ctx)
		if err != nil {
			return backup.ImportResult{}, err
		}
		return svc.Restore(ctx, latest)
	case key != "":
		return svc.Restore(ctx, key)
	default:
		return backup.ImportResult{}, fmt.Errorf("import needs --file or --key")
	}
}
