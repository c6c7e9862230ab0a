package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/applications"
	googleauth "jobtracker-backend/internal/auth"
	"jobtracker-backend/internal/backup"
	"jobtracker-backend/internal/goals"
	"jobtracker-backend/internal/notion"
	"jobtracker-backend/internal/progress"
	"jobtracker-backend/internal/shared/auth"
	"jobtracker-backend/internal/shared/config"
	"jobtracker-backend/internal/shared/server"
	"jobtracker-backend/internal/shared/server/middleware"
	"jobtracker-backend/internal/shared/storage/db"
	"jobtracker-backend/internal/shared/storage/object"
	localstore "jobtracker-backend/internal/shared/storage/object/local"
	s3store "jobtracker-backend/internal/shared/storage/object/s3"
	"jobtracker-backend/internal/shared/telemetry"
	"jobtracker-backend/internal/stats"
)

const notionPingTimeout = 5 * time.Second

// App holds shared dependencies.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Dialect db.Dialect
	Store   object.Store
	Signer  *auth.Signer

	ApplicationsRepo applications.Repo
	GoalsRepo        goals.Repo
	ProgressRepo     progress.Repo

	ApplicationsService *applications.Service
	GoalsService        *goals.Service
	Aggregator          *progress.Aggregator
	Reporter            *progress.Reporter
	BackupService       *backup.Service
}

// Options tunes Build for the different binaries.
type Options struct {
	// DBOptions sizes the connection pool.
	DBOptions db.Options
	// SkipRouter leaves Router nil for CLI tools.
	SkipRouter bool
	// SkipMigrations assumes the schema is already current.
	SkipMigrations bool
}

// Build prepares shared dependencies and, unless told otherwise, the router.
func Build(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	app := &App{Config: cfg}

	if err := buildDB(ctx, app, opts); err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Store = store

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.IsDevLike())
	if err != nil {
		return nil, err
	}
	app.Signer = signer

	buildServices(ctx, app)

	if !opts.SkipRouter {
		app.Router = server.NewRouter(routerDeps(app))
	}
	return app, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, app *App, opts Options) error {
	cfg := app.Config
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_store", map[string]any{
				"reason": "DATABASE_URL empty; using in-memory repositories",
			})
			return nil
		}
		return fmt.Errorf("DATABASE_URL is required")
	}

	dbOpts := opts.DBOptions
	if dbOpts == (db.Options{}) {
		dbOpts = db.DefaultServerOptions()
	}
	sqlDB, dialect, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(dbOpts))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_store", map[string]any{
				"reason": "database connect failed; using in-memory repositories",
				"error":  err,
			})
			return nil
		}
		return err
	}

	if !opts.SkipMigrations {
		if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	app.DB = sqlDB
	app.Dialect = dialect
	return nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(ctx context.Context, app *App) {
	if app.DB != nil {
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
		app.GoalsRepo = &goals.PGRepo{DB: app.DB}
		app.ProgressRepo = &progress.PGRepo{DB: app.DB}
	} else {
		app.ApplicationsRepo = applications.NewMemoryRepo()
		app.GoalsRepo = goals.NewMemoryRepo()
		app.ProgressRepo = progress.NewMemoryRepo()
	}

	app.GoalsService = &goals.Service{Repo: app.GoalsRepo}
	app.Aggregator = &progress.Aggregator{
		Apps:  app.ApplicationsRepo,
		Goals: app.GoalsService,
		Repo:  app.ProgressRepo,
	}
	app.Reporter = &progress.Reporter{Repo: app.ProgressRepo}
	app.ApplicationsService = &applications.Service{
		Repo:     app.ApplicationsRepo,
		Progress: app.Aggregator,
	}
	if app.Config.NotionToken != "" && app.Config.NotionDBID != "" {
		mirror := notion.New(app.Config.NotionToken, app.Config.NotionDBID)
		checkMirror(ctx, mirror)
		app.ApplicationsService.Mirror = mirror
	}
	app.BackupService = &backup.Service{
		Apps:     app.ApplicationsRepo,
		Goals:    app.GoalsRepo,
		Progress: app.ProgressRepo,
		Recalc:   app.Aggregator,
		Store:    app.Store,
	}
}

// pinger is the reachability check of an optional integration.
type pinger interface {
	Ping(ctx context.Context) error
}

// checkMirror warns when the Notion database cannot be reached. The mirror
// stays enabled; each create logs its own failure.
func checkMirror(ctx context.Context, p pinger) bool {
	pingCtx, cancel := context.WithTimeout(ctx, notionPingTimeout)
	defer cancel()
	if err := p.Ping(pingCtx); err != nil {
		telemetry.Warn("bootstrap.notion_unreachable", map[string]any{"error": err})
		return false
	}
	return true
}

func routerDeps(app *App) server.RouterDeps {
	cfg := app.Config
	return server.RouterDeps{
		Config:       cfg,
		Signer:       app.Signer,
		Applications: applications.NewHandler(app.ApplicationsService),
		Goals:        goals.NewHandler(app.GoalsService),
		Progress: &progress.Handler{
			Reporter:   app.Reporter,
			Aggregator: app.Aggregator,
			Goals:      app.GoalsService,
		},
		Stats:       &stats.Handler{Apps: app.ApplicationsRepo},
		Credentials: googleauth.NewCredentialsService(cfg.AuthUser, cfg.AuthPassword, app.Signer),
		GoogleAuth: googleauth.NewGoogleService(googleauth.GoogleOptions{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			UIRedirect:   cfg.UIRedirectURL,
			AllowedEmail: cfg.AuthAllowedEmail,
		}, app.Signer),
		LoginLimiter: middleware.NewRateLimiter(nil),
	}
}
