package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/migrations"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Open establishes a connection pool to url, verifies it and applies
// pending migrations.
func Open(ctx context.Context, url string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open(DriverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrations.Up(ctx, db, migrations.DialectPostgres, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// NewStores builds the user and task stores over db, which may be a pool or
// a transaction.
func NewStores(db store.DBTX) store.Stores {
	return store.Stores{Users: NewPostgresUserStore(db), Tasks: NewPostgresTaskStore(db)}
}

// NewTxRunner returns a store.TxRunner that runs each unit of work in its
// own transaction.
func NewTxRunner(db *sql.DB) store.TxRunner {
	return store.SQLTxRunner(db, NewStores)
}
