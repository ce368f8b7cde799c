package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/phrazzld/taskdeck/internal/config"
)

// InitSentry configures the global Sentry client. It reports whether a
// client was installed: with an empty DSN nothing is sent and false is returned.
func InitSentry(cfg config.TelemetryConfig, release string) (bool, error) {
	if cfg.SentryDSN == "" {
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          release,
		EnableTracing:    true,
		TracesSampleRate: cfg.TracesSampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return false, fmt.Errorf("failed to initialize sentry: %w", err)
	}
	return true, nil
}

// Flush waits up to timeout for buffered Sentry events to be delivered.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// HTTPMiddleware gives every request its own Sentry hub and captures panics
// before re-raising them, so an outer recoverer still answers the request.
func HTTPMiddleware() func(http.Handler) http.Handler {
	handler := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
	return handler.Handle
}

// StartSpan starts a performance span named op as a child of any span in
// ctx. The returned function finishes the span.
func StartSpan(ctx context.Context, op string) (context.Context, func()) {
	span := sentry.StartSpan(ctx, op)
	return span.Context(), span.Finish
}

// SentryHandler forwards events to Sentry. It uses the hub attached to the
// request context when there is one, so breadcrumbs and user identity stay
// scoped to a single request.
type SentryHandler struct{}

var _ Handler = SentryHandler{}

// NewSentryHandler creates a SentryHandler.
func NewSentryHandler() SentryHandler {
	return SentryHandler{}
}

// HandleEvent implements Handler.
func (SentryHandler) HandleEvent(ctx context.Context, event *Event) error {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	switch event.Kind {
	case KindBreadcrumb:
		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Type:      "default",
			Category:  event.Category,
			Message:   event.Message,
			Level:     sentry.Level(event.Level),
			Data:      event.Data,
			Timestamp: event.Timestamp,
		}, nil)
	case KindMessage:
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetLevel(sentry.Level(event.Level))
			if len(event.Data) > 0 {
				scope.SetContext("data", sentry.Context(event.Data))
			}
			hub.CaptureMessage(event.Message)
		})
	case KindException:
		hub.CaptureException(event.Err)
	case KindUser:
		if event.User == nil {
			return fmt.Errorf("user event %s has no user", event.ID)
		}
		hub.Scope().SetUser(sentry.User{
			ID:       strconv.FormatInt(event.User.ID, 10),
			Username: event.User.Username,
		})
	default:
		return fmt.Errorf("unknown telemetry event kind %q", event.Kind)
	}
	return nil
}
