package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phrazzld/taskdeck/internal/platform/logger"
)

// Stores groups the user and task stores of one backend.
type Stores struct {
	Users UserStore
	Tasks TaskStore
}

// StoresFn receives stores bound to a single unit of work.
type StoresFn func(ctx context.Context, stores Stores) error

// TxRunner runs fn atomically: either every write fn makes is kept or none is.
type TxRunner func(ctx context.Context, fn StoresFn) error

// TxFn is a function that operates within a database transaction.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction executes fn within a database transaction. The
// transaction is committed when fn returns nil and rolled back when it
// returns an error or panics; a panic is re-raised after the rollback.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back transaction after panic",
					"error", rbErr,
					"panic", p)
			}
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction",
				"rollback_error", rbErr,
				"original_error", err)
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SQLTxRunner returns a TxRunner that opens a transaction on db and hands fn
// the stores built over it by bind.
func SQLTxRunner(db *sql.DB, bind func(DBTX) Stores) TxRunner {
	return func(ctx context.Context, fn StoresFn) error {
		return RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return fn(ctx, bind(tx))
		})
	}
}

// DirectRunner returns a TxRunner that calls fn with stores as they are. It
// suits backends without transactions, such as the in-memory stores; writes
// made before a failure are kept.
func DirectRunner(stores Stores) TxRunner {
	return func(ctx context.Context, fn StoresFn) error {
		return fn(ctx, stores)
	}
}
