package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/mocks"
	"github.com/phrazzld/taskdeck/internal/service"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t)

		user, err := env.users.Register(ctx, "carol", "secret")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "carol", user.Username)
		assert.NotEqual(t, "secret", user.HashedPassword)

		msgs := env.telemetry.Messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "New user registered: carol", msgs[0].Text)
		assert.Equal(t, telemetry.LevelInfo, msgs[0].Level)
		assert.Equal(t, map[string]any{"user_id": int64(1)}, msgs[0].Data)
	})

	t.Run("ids are sequential", func(t *testing.T) {
		env := newTestEnv(t)

		first, err := env.users.Register(ctx, "alice", "test123")
		require.NoError(t, err)
		second, err := env.users.Register(ctx, "bob", "test123")
		require.NoError(t, err)
		assert.Equal(t, first.ID+1, second.ID)
	})

	t.Run("duplicate username leaves store unchanged", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.users.Register(ctx, "carol", "secret")
		require.NoError(t, err)

		_, err = env.users.Register(ctx, "carol", "other")
		assert.ErrorIs(t, err, service.ErrDuplicateUsername)

		count, err := env.userStore.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		stored, err := env.users.FindByUsername(ctx, "carol")
		require.NoError(t, err)
		assert.True(t, env.users.VerifyPassword(stored, "secret"), "original password still valid")
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.users.Register(ctx, "carol", "secret")
		require.NoError(t, err)
		_, err = env.users.Register(ctx, "Carol", "secret")
		assert.NoError(t, err)
	})

	t.Run("invalid input", func(t *testing.T) {
		tests := []struct {
			name     string
			username string
			password string
			cause    error
		}{
			{"empty username", "", "secret", domain.ErrEmptyUsername},
			{"blank username", "   ", "secret", domain.ErrEmptyUsername},
			{"empty password", "carol", "", domain.ErrEmptyPassword},
			{"overlong password", "carol", string(make([]byte, 73)), domain.ErrPasswordTooLong},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				env := newTestEnv(t)
				_, err := env.users.Register(ctx, tc.username, tc.password)
				assert.ErrorIs(t, err, service.ErrInvalidInput)
				assert.ErrorIs(t, err, tc.cause)
				assert.Zero(t, env.hasher.HashCalls)
			})
		}
	})

	t.Run("hash failure", func(t *testing.T) {
		env := newTestEnv(t)
		env.hasher.HashFn = func(string) (string, error) { return "", errors.New("hash failed") }

		_, err := env.users.Register(ctx, "carol", "secret")
		assert.Error(t, err)
		assert.Empty(t, env.telemetry.Messages())
	})

	t.Run("store failure", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(errors.New("disk full"))
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, nil, discardLogger())

		_, err := svc.Register(ctx, "carol", "secret")
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrDuplicateUsername)
		users.AssertExpectations(t)
	})
}

func TestUserService_Find(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	created, err := env.users.Register(ctx, "carol", "secret")
	require.NoError(t, err)

	byName, err := env.users.FindByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byID, err := env.users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", byID.Username)

	_, err = env.users.FindByUsername(ctx, "dave")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = env.users.FindByID(ctx, 99)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_VerifyPassword(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, err := env.users.Register(ctx, "carol", "secret")
	require.NoError(t, err)

	assert.True(t, env.users.VerifyPassword(user, "secret"))
	assert.False(t, env.users.VerifyPassword(user, "Secret"))
	assert.False(t, env.users.VerifyPassword(nil, "secret"))
}
