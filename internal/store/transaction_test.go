package store_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/platform/memory"
	"github.com/phrazzld/taskdeck/internal/platform/sqlite"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createUser(ctx context.Context, stores store.Stores, name string) error {
	user, err := domain.NewUser(name, "hashed:pw")
	if err != nil {
		return err
	}
	return stores.Users.Create(ctx, user)
}

func TestSQLTxRunner(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	stores := sqlite.NewStores(db)
	runTx := sqlite.NewTxRunner(db)

	t.Run("commits on success", func(t *testing.T) {
		err := runTx(ctx, func(ctx context.Context, tx store.Stores) error {
			return createUser(ctx, tx, "alice")
		})
		require.NoError(t, err)

		_, err = stores.Users.GetByUsername(ctx, "alice")
		assert.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := runTx(ctx, func(ctx context.Context, tx store.Stores) error {
			if err := createUser(ctx, tx, "bob"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = stores.Users.GetByUsername(ctx, "bob")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("rolls back and re-panics", func(t *testing.T) {
		assert.PanicsWithValue(t, "kaboom", func() {
			_ = runTx(ctx, func(ctx context.Context, tx store.Stores) error {
				if err := createUser(ctx, tx, "carol"); err != nil {
					return err
				}
				panic("kaboom")
			})
		})

		_, err := stores.Users.GetByUsername(ctx, "carol")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestDirectRunner(t *testing.T) {
	ctx := context.Background()
	stores := store.Stores{Users: memory.NewUserStore(), Tasks: memory.NewTaskStore()}

	err := store.DirectRunner(stores)(ctx, func(ctx context.Context, s store.Stores) error {
		if err := createUser(ctx, s, "dave"); err != nil {
			return err
		}
		return errors.New("late failure")
	})
	require.Error(t, err)

	count, err := stores.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "direct writes are not undone")
}
