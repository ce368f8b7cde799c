// Package main implements the entry point for the taskdeck server, a small
// server-rendered to-do list that reports its activity to telemetry.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phrazzld/taskdeck/internal/config"
	"github.com/phrazzld/taskdeck/internal/platform/logger"
	"github.com/phrazzld/taskdeck/internal/telemetry"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configPath := flag.String("config", os.Getenv("TASKDECK_CONFIG"), "path to a YAML config file")
	migrateOnly := flag.Bool("migrate-only", false, "apply database migrations and exit")
	flag.Parse()

	if err := run(*configPath, *migrateOnly); err != nil {
		log.Fatalf("taskdeck: %v", err)
	}
}

func run(configPath string, migrateOnly bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"version", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sentryEnabled, err := telemetry.InitSentry(cfg.Telemetry, version)
	if err != nil {
		return err
	}
	if sentryEnabled {
		l.Info("sentry telemetry enabled", "environment", cfg.Telemetry.Environment)
		defer telemetry.Flush(2 * time.Second)
	}

	app, err := newApplication(ctx, cfg, l, sentryEnabled)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if migrateOnly {
		l.Info("migrations applied, exiting", "database_driver", cfg.Database.Driver)
		app.cleanup()
		return nil
	}

	return app.Run(ctx)
}
