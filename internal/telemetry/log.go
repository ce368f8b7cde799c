package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdeck/internal/platform/logger"
	"github.com/phrazzld/taskdeck/internal/redact"
)

// LogHandler writes events as structured log records. It uses the logger
// carried by the context when present, so records keep their trace_id.
type LogHandler struct {
	fallback *slog.Logger
}

var _ Handler = (*LogHandler)(nil)

// NewLogHandler creates a LogHandler. fallback is used when the event
// context carries no logger; nil means slog.Default().
func NewLogHandler(fallback *slog.Logger) *LogHandler {
	return &LogHandler{fallback: fallback}
}

// HandleEvent implements Handler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *Event) error {
	log := h.loggerFor(ctx).With(
		"telemetry_event_id", event.ID.String(),
		"telemetry_kind", string(event.Kind),
	)

	switch event.Kind {
	case KindBreadcrumb:
		log.DebugContext(ctx, "breadcrumb",
			"category", event.Category,
			"message", event.Message,
			"level", string(event.Level),
			"data", event.Data)
	case KindMessage:
		log.Log(ctx, slogLevel(event.Level), event.Message, "data", event.Data)
	case KindException:
		log.ErrorContext(ctx, "exception captured",
			"error", redact.Error(event.Err),
			"error_type", fmt.Sprintf("%T", event.Err))
	case KindUser:
		if event.User != nil {
			log.DebugContext(ctx, "telemetry user bound",
				"user_id", event.User.ID,
				"username", event.User.Username)
		}
	default:
		return fmt.Errorf("unknown telemetry event kind %q", event.Kind)
	}
	return nil
}

func (h *LogHandler) loggerFor(ctx context.Context) *slog.Logger {
	l := logger.FromContext(ctx)
	if l == slog.Default() && h.fallback != nil {
		return h.fallback
	}
	return l
}

func slogLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
