// Package migrations embeds the SQL schema for every supported database
// dialect and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Dialect names accepted by Up. They match the database.driver config values.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// TableName is the goose version table.
const TableName = "schema_migrations"

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// gooseDialects maps our driver names to goose dialect names.
var gooseDialects = map[string]string{
	DialectPostgres: "postgres",
	DialectSQLite:   "sqlite3",
}

// slogGooseLogger forwards goose output to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...), "component", "goose")
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "goose")
}

// Up applies all pending migrations for dialect to db.
// goose keeps its configuration in package state, so Up must not be called
// concurrently.
func Up(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) error {
	gooseDialect, ok := gooseDialects[dialect]
	if !ok {
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	if logger == nil {
		logger = slog.Default()
	}
	goose.SetLogger(&slogGooseLogger{logger: logger})
	goose.SetBaseFS(files)
	goose.SetTableName(TableName)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, dialect); err != nil {
		return fmt.Errorf("failed to apply %s migrations: %w", dialect, err)
	}

	return nil
}
