package service_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/taskdeck/internal/config"
	"github.com/phrazzld/taskdeck/internal/mocks"
	"github.com/phrazzld/taskdeck/internal/platform/memory"
	"github.com/phrazzld/taskdeck/internal/service"
	"github.com/phrazzld/taskdeck/internal/service/auth"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	userStore *memory.UserStore
	taskStore *memory.TaskStore
	hasher    *mocks.MockPasswordHasher
	telemetry *mocks.TelemetryRecorder
	users     service.UserService
	tasks     service.TaskService
	auth      service.AuthService
	sessions  auth.SessionManager
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		userStore: memory.NewUserStore(),
		taskStore: memory.NewTaskStore(),
		hasher:    &mocks.MockPasswordHasher{},
		telemetry: mocks.NewTelemetryRecorder(),
	}

	sessions, err := auth.NewSessionManager(config.AuthConfig{
		SessionSecret:          "test-session-secret-0123456789abcdef",
		SessionLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	env.sessions = sessions

	logger := discardLogger()
	env.users = service.NewUserService(env.userStore, env.hasher, env.telemetry, logger)
	env.tasks = service.NewTaskService(env.taskStore, env.userStore, env.telemetry, logger)
	env.auth = service.NewAuthService(env.users, sessions, env.telemetry, logger)
	return env
}
