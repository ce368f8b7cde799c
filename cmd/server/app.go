package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdeck/internal/config"
	"github.com/phrazzld/taskdeck/internal/platform/memory"
	"github.com/phrazzld/taskdeck/internal/platform/postgres"
	"github.com/phrazzld/taskdeck/internal/platform/sqlite"
	"github.com/phrazzld/taskdeck/internal/service"
	"github.com/phrazzld/taskdeck/internal/service/auth"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/telemetry"
	"github.com/phrazzld/taskdeck/internal/web"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil with the memory driver.
	db *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore
	runTx     store.TxRunner

	telemetry *telemetry.Emitter
	sessions  auth.SessionManager
	users     service.UserService
	tasks     service.TaskService
	auth      service.AuthService
	renderer  web.Renderer
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	sentryEnabled bool,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	app.telemetry = telemetry.NewEmitter(logger, telemetry.NewLogHandler(logger))
	if sentryEnabled {
		app.telemetry.RegisterHandler(telemetry.NewSentryHandler())
	}

	stores, runTx, db, err := openStores(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	app.userStore, app.taskStore, app.runTx, app.db = stores.Users, stores.Tasks, runTx, db

	app.sessions, err = auth.NewSessionManager(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize session manager: %w", err)
	}
	logger.Info("session manager initialized",
		"session_lifetime_minutes", cfg.Auth.SessionLifetimeMinutes)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.users = service.NewUserService(app.userStore, hasher, app.telemetry, logger)
	app.tasks = service.NewTaskService(app.taskStore, app.userStore, app.telemetry, logger)
	app.auth = service.NewAuthService(app.users, app.sessions, app.telemetry, logger)

	app.renderer, err = web.NewTemplateRenderer()
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	if cfg.Seed.Enabled {
		seeder := service.NewSeeder(stores, app.runTx, hasher, app.telemetry, logger)
		seeded, err := seeder.Seed(ctx, service.DefaultSeedUsers, service.DefaultSeedTasks)
		if err != nil {
			app.telemetry.Exception(ctx, err)
			app.cleanup()
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
		if seeded {
			for _, u := range service.DefaultSeedUsers {
				logger.Info("demo account available", "username", u.Username)
			}
		}
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// openStores builds the stores for the configured driver and a runner for
// multi-step writes. db is nil for the memory driver.
func openStores(
	ctx context.Context,
	cfg config.DatabaseConfig,
	logger *slog.Logger,
) (stores store.Stores, runTx store.TxRunner, db *sql.DB, err error) {
	switch cfg.Driver {
	case "memory":
		logger.Info("using in-memory stores; data is lost on restart")
		stores = store.Stores{Users: memory.NewUserStore(), Tasks: memory.NewTaskStore()}
		return stores, store.DirectRunner(stores), nil, nil

	case "sqlite":
		db, err = sqlite.Open(ctx, cfg.URL, logger)
		if err != nil {
			return stores, nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		logger.Info("sqlite database ready")
		return sqlite.NewStores(db), sqlite.NewTxRunner(db), db, nil

	case "postgres":
		db, err = postgres.Open(ctx, cfg.URL, logger)
		if err != nil {
			return stores, nil, nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		logger.Info("postgres database ready")
		return postgres.NewStores(db), postgres.NewTxRunner(db), db, nil

	default:
		return stores, nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
