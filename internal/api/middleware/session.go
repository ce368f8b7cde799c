package middleware

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/taskdeck/internal/api/shared"
	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/platform/logger"
	"github.com/phrazzld/taskdeck/internal/service"
	"github.com/phrazzld/taskdeck/internal/telemetry"
)

// SessionCookieName is the cookie holding the signed session token.
const SessionCookieName = "taskdeck_session"

// SessionMiddleware resolves the session cookie into a user.
type SessionMiddleware struct {
	auth      service.AuthService
	telemetry telemetry.Sink
}

// NewSessionMiddleware creates a new SessionMiddleware with the given dependencies.
func NewSessionMiddleware(auth service.AuthService, sink telemetry.Sink) *SessionMiddleware {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	return &SessionMiddleware{auth: auth, telemetry: sink}
}

// Resolve puts the caller's identity in the request context and binds it to
// the request's telemetry scope. It never rejects a request: callers
// without a usable session continue anonymously.
func (m *SessionMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		user, session, err := m.auth.CurrentUser(ctx, cookie.Value)
		if err != nil {
			logger.FromContext(ctx).Error("failed to resolve session", "error", err)
			m.telemetry.Exception(ctx, fmt.Errorf("resolve session: %w", err))
			next.ServeHTTP(w, r)
			return
		}
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}

		m.telemetry.SetUser(ctx, telemetry.User{ID: user.ID, Username: user.Username})
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("user_id", user.ID))
		next.ServeHTTP(w, r.WithContext(shared.WithIdentity(ctx, user, session)))
	})
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shared.CurrentUser(r.Context()) == nil {
			logger.FromContext(r.Context()).Debug("anonymous request to protected route",
				"path", r.URL.Path)
			shared.SeeOther(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the authenticated user from the context, or nil.
func CurrentUser(r *http.Request) *domain.User {
	return shared.CurrentUser(r.Context())
}
