// Package storetest contains a behavioural test suite shared by every
// store.UserStore / store.TaskStore implementation.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty pair of stores for a single test.
type Factory func(t *testing.T) (store.UserStore, store.TaskStore)

// Run executes the full suite against the stores produced by newStores.
func Run(t *testing.T, newStores Factory) {
	t.Run("UserCreateAssignsSequentialIDs", func(t *testing.T) {
		users, _ := newStores(t)
		a := mustCreateUser(t, users, "alice")
		b := mustCreateUser(t, users, "bob")
		assert.Equal(t, int64(1), a.ID)
		assert.Equal(t, int64(2), b.ID)
	})

	t.Run("UserCreateRejectsDuplicateUsername", func(t *testing.T) {
		users, _ := newStores(t)
		ctx := context.Background()
		mustCreateUser(t, users, "carol")

		dup, err := domain.NewUser("carol", "other-hash")
		require.NoError(t, err)
		err = users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrUsernameExists)

		count, err := users.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "duplicate registration must not mutate the store")
	})

	t.Run("UsernameIsCaseSensitive", func(t *testing.T) {
		users, _ := newStores(t)
		mustCreateUser(t, users, "carol")
		upper := mustCreateUser(t, users, "Carol")
		assert.Equal(t, int64(2), upper.ID)

		_, err := users.GetByUsername(context.Background(), "CAROL")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("UserLookup", func(t *testing.T) {
		users, _ := newStores(t)
		ctx := context.Background()
		created := mustCreateUser(t, users, "dave")

		byName, err := users.GetByUsername(ctx, "dave")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byName.ID)
		assert.Equal(t, "hash-dave", byName.HashedPassword)

		byID, err := users.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "dave", byID.Username)

		_, err = users.GetByID(ctx, 999)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		_, err = users.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("TaskCreateAndListByOwner", func(t *testing.T) {
		users, tasks := newStores(t)
		ctx := context.Background()
		alice := mustCreateUser(t, users, "alice")
		bob := mustCreateUser(t, users, "bob")

		t1 := mustCreateTask(t, tasks, alice.ID, "first")
		t2 := mustCreateTask(t, tasks, bob.ID, "bob's")
		t3 := mustCreateTask(t, tasks, alice.ID, "second")
		assert.Equal(t, []int64{1, 2, 3}, []int64{t1.ID, t2.ID, t3.ID})
		assert.False(t, t1.Completed)

		list, err := tasks.ListByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "first", list[0].Title)
		assert.Equal(t, "second", list[1].Title)
		for _, task := range list {
			assert.Equal(t, alice.ID, task.OwnerID)
		}

		empty, err := tasks.ListByOwner(ctx, 42)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("TaskToggle", func(t *testing.T) {
		users, tasks := newStores(t)
		ctx := context.Background()
		owner := mustCreateUser(t, users, "erin")
		task := mustCreateTask(t, tasks, owner.ID, "toggle me")

		toggled, err := tasks.Toggle(ctx, task.ID)
		require.NoError(t, err)
		assert.True(t, toggled.Completed)

		fetched, err := tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.True(t, fetched.Completed)

		toggled, err = tasks.Toggle(ctx, task.ID)
		require.NoError(t, err)
		assert.False(t, toggled.Completed)

		_, err = tasks.Toggle(ctx, 999)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		_, err = tasks.GetByID(ctx, 999)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("ReturnedEntitiesAreCopies", func(t *testing.T) {
		users, tasks := newStores(t)
		ctx := context.Background()
		owner := mustCreateUser(t, users, "frank")
		task := mustCreateTask(t, tasks, owner.ID, "original")

		fetched, err := tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		fetched.Title = "mutated"
		fetched.Completed = true

		again, err := tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", again.Title)
		assert.False(t, again.Completed)
	})

	t.Run("ConcurrentTaskCreation", func(t *testing.T) {
		users, tasks := newStores(t)
		ctx := context.Background()
		owner := mustCreateUser(t, users, "grace")

		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				task, err := domain.NewTask(owner.ID, "concurrent")
				if assert.NoError(t, err) {
					assert.NoError(t, tasks.Create(ctx, task))
				}
			}()
		}
		wg.Wait()

		list, err := tasks.ListByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, n)
		seen := make(map[int64]bool, n)
		for _, task := range list {
			assert.False(t, seen[task.ID], "task IDs must be unique")
			seen[task.ID] = true
		}
	})
}

func mustCreateUser(t *testing.T, users store.UserStore, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "hash-"+username)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func mustCreateTask(t *testing.T, tasks store.TaskStore, ownerID int64, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(ownerID, title)
	require.NoError(t, err)
	require.NoError(t, tasks.Create(context.Background(), task))
	return task
}
