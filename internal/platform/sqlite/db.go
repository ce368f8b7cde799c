package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/migrations"
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Open opens (creating if needed) the SQLite database at dsn, applies the
// connection pragmas and runs migrations. ":memory:" is accepted for tests.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite benefits from a single writer connection, and an in-memory
	// database only exists on the connection that created it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			closeQuietly(db, logger)
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db, logger)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := migrations.Up(ctx, db, migrations.DialectSQLite, logger); err != nil {
		closeQuietly(db, logger)
		return nil, err
	}

	return db, nil
}

func closeQuietly(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil && logger != nil {
		logger.Error("error closing db", "error", err)
	}
}

// NewStores builds the user and task stores over db, which may be a pool or
// a transaction.
func NewStores(db store.DBTX) store.Stores {
	return store.Stores{Users: NewUserStore(db), Tasks: NewTaskStore(db)}
}

// NewTxRunner returns a store.TxRunner that runs each unit of work in its
// own SQLite transaction.
func NewTxRunner(db *sql.DB) store.TxRunner {
	return store.SQLTxRunner(db, NewStores)
}
