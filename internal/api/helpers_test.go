package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskdeck/internal/api/shared"
	"github.com/phrazzld/taskdeck/internal/config"
	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/mocks"
	"github.com/phrazzld/taskdeck/internal/platform/memory"
	"github.com/phrazzld/taskdeck/internal/service"
	"github.com/phrazzld/taskdeck/internal/service/auth"
	"github.com/phrazzld/taskdeck/internal/web"
	"github.com/stretchr/testify/require"
)

// recordingRenderer remembers the last page instead of producing HTML.
type recordingRenderer struct {
	name string
	page web.Page
	err  error
}

func (r *recordingRenderer) Render(w http.ResponseWriter, status int, name string, data web.Page) error {
	if r.err != nil {
		return r.err
	}
	r.name = name
	r.page = data
	w.WriteHeader(status)
	return nil
}

type harness struct {
	users     service.UserService
	tasks     service.TaskService
	auth      service.AuthService
	telemetry *mocks.TelemetryRecorder
	renderer  *recordingRenderer
	taskStore *memory.TaskStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessions, err := auth.NewSessionManager(config.AuthConfig{
		SessionSecret:          "handler-test-secret-0123456789abcd",
		SessionLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	userStore := memory.NewUserStore()
	taskStore := memory.NewTaskStore()
	recorder := mocks.NewTelemetryRecorder()
	users := service.NewUserService(userStore, &mocks.MockPasswordHasher{}, recorder, log)

	return &harness{
		users:     users,
		tasks:     service.NewTaskService(taskStore, userStore, recorder, log),
		auth:      service.NewAuthService(users, sessions, recorder, log),
		telemetry: recorder,
		renderer:  &recordingRenderer{},
		taskStore: taskStore,
	}
}

func (h *harness) register(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := h.users.Register(context.Background(), username, "secret")
	require.NoError(t, err)
	return user
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func asUser(req *http.Request, user *domain.User) *http.Request {
	return req.WithContext(shared.WithIdentity(req.Context(), user, nil))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func flashOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	c := findCookie(rec, shared.FlashCookieName)
	if c == nil {
		return ""
	}
	msg, err := url.QueryUnescape(c.Value)
	require.NoError(t, err)
	return msg
}
