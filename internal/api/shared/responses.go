package shared

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskdeck/internal/platform/logger"
)

// SeeOther redirects with 303 so the browser follows up with a GET.
func SeeOther(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// RespondWithText writes a plain-text response. Server errors are logged
// with the request's trace ID.
func RespondWithText(w http.ResponseWriter, r *http.Request, status int, message string) {
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("sending error response",
			"status_code", status,
			"trace_id", GetTraceID(r.Context()))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(message)); err != nil {
		slog.Debug("failed to write response body", "error", err)
	}
}
