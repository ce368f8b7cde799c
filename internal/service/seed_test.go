package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/taskdeck/internal/mocks"
	"github.com/phrazzld/taskdeck/internal/platform/sqlite"
	"github.com/phrazzld/taskdeck/internal/service"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeder(env *testEnv, sink telemetry.Sink) *service.Seeder {
	stores := store.Stores{Users: env.userStore, Tasks: env.taskStore}
	return service.NewSeeder(stores, nil, env.hasher, sink, discardLogger())
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seeder := newSeeder(env, env.telemetry)

	seeded, err := seeder.Seed(ctx, service.DefaultSeedUsers, service.DefaultSeedTasks)
	require.NoError(t, err)
	assert.True(t, seeded)

	users, err := env.userStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, users)

	alice, err := env.users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)
	assert.True(t, env.users.VerifyPassword(alice, "test123"))

	admin, err := env.users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, env.users.VerifyPassword(admin, "admin123"))

	aliceTasks, err := env.tasks.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceTasks, 2)
	assert.Equal(t, "Alice's first task", aliceTasks[0].Title)
	assert.False(t, aliceTasks[0].Completed)
	assert.Equal(t, "Alice's second task", aliceTasks[1].Title)
	assert.True(t, aliceTasks[1].Completed)

	tasks, err := env.taskStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, tasks)

	var texts []string
	for _, m := range env.telemetry.Messages() {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{
		"Test user created: alice",
		"Test user created: bob",
		"Test user created: admin",
		"Test tasks created: 4 tasks",
	}, texts, "one message per seeded user, none from registration itself")

	again, err := seeder.Seed(ctx, service.DefaultSeedUsers, service.DefaultSeedTasks)
	require.NoError(t, err)
	assert.False(t, again, "populated stores are left alone")

	users, err = env.userStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, users)
}

func TestSeeder_UnknownOwner(t *testing.T) {
	env := newTestEnv(t)
	seeder := newSeeder(env, nil)

	_, err := seeder.Seed(context.Background(),
		[]service.SeedUser{{Username: "alice", Password: "test123"}},
		[]service.SeedTask{{Owner: "mallory", Title: "sneaky"}})
	assert.ErrorContains(t, err, `unknown user "mallory"`)
}

func TestSeeder_FailedSeedLeavesSQLStoreEmpty(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	stores := sqlite.NewStores(db)
	recorder := mocks.NewTelemetryRecorder()
	seeder := service.NewSeeder(stores, sqlite.NewTxRunner(db), &mocks.MockPasswordHasher{},
		recorder, discardLogger())

	_, err = seeder.Seed(ctx,
		[]service.SeedUser{{Username: "alice", Password: "test123"}},
		[]service.SeedTask{{Owner: "alice", Title: "kept?"}, {Owner: "mallory", Title: "sneaky"}})
	require.Error(t, err)

	users, err := stores.Users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, users, "users written before the failure are rolled back")
	tasks, err := stores.Tasks.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, tasks)
	assert.Empty(t, recorder.Messages(), "nothing is announced for a failed seed")

	seeded, err := seeder.Seed(ctx, service.DefaultSeedUsers, service.DefaultSeedTasks)
	require.NoError(t, err)
	assert.True(t, seeded, "a later start can seed the empty store")
}
