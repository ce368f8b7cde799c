package middleware

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/taskdeck/internal/api/shared"
	"github.com/phrazzld/taskdeck/internal/telemetry"
)

// RequestBreadcrumb records a "request" breadcrumb for every request, so a
// later exception shows which pages the user visited. It must run after
// SessionMiddleware to see the caller.
func RequestBreadcrumb(sink telemetry.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := "anonymous"
			if user := shared.CurrentUser(r.Context()); user != nil {
				username = user.Username
			}

			sink.Breadcrumb(r.Context(), telemetry.Breadcrumb{
				Category: "request",
				Message:  fmt.Sprintf("Request to %s", r.URL.Path),
				Level:    telemetry.LevelInfo,
				Data: map[string]any{
					"method": r.Method,
					"path":   r.URL.Path,
					"user":   username,
				},
			})

			next.ServeHTTP(w, r)
		})
	}
}
