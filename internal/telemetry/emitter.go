package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Emitter is a Sink that dispatches every call, as an Event, to the
// registered handlers in registration order.
type Emitter struct {
	handlers []Handler
	mu       sync.RWMutex
	logger   *slog.Logger
	now      func() time.Time
}

var _ Sink = (*Emitter)(nil)

// NewEmitter creates an Emitter with the given initial handlers.
func NewEmitter(logger *slog.Logger, handlers ...Handler) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		handlers: append([]Handler(nil), handlers...),
		logger:   logger.With("component", "telemetry_emitter"),
		now:      time.Now,
	}
}

// RegisterHandler adds a new handler to receive events.
func (e *Emitter) RegisterHandler(handler Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered telemetry handler", "handler_count", len(e.handlers))
}

// Emit delivers event to every handler. A failing handler does not stop
// delivery to the others; the first error is returned.
func (e *Emitter) Emit(ctx context.Context, event *Event) error {
	e.mu.RLock()
	handlers := make([]Handler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("telemetry handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_kind", event.Kind)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Breadcrumb implements Sink.
func (e *Emitter) Breadcrumb(ctx context.Context, crumb Breadcrumb) {
	level := crumb.Level
	if level == "" {
		level = LevelInfo
	}
	e.emit(ctx, &Event{
		Kind:     KindBreadcrumb,
		Level:    level,
		Category: crumb.Category,
		Message:  crumb.Message,
		Data:     crumb.Data,
	})
}

// Message implements Sink.
func (e *Emitter) Message(ctx context.Context, text string, level Level, data map[string]any) {
	e.emit(ctx, &Event{
		Kind:    KindMessage,
		Level:   level,
		Message: text,
		Data:    data,
	})
}

// Exception implements Sink.
func (e *Emitter) Exception(ctx context.Context, err error) {
	if err == nil {
		return
	}
	e.emit(ctx, &Event{
		Kind:    KindException,
		Level:   LevelError,
		Message: err.Error(),
		Err:     err,
	})
}

// SetUser implements Sink.
func (e *Emitter) SetUser(ctx context.Context, user User) {
	e.emit(ctx, &Event{
		Kind:  KindUser,
		Level: LevelDebug,
		User:  &user,
	})
}

func (e *Emitter) emit(ctx context.Context, event *Event) {
	event.ID = uuid.New()
	event.Timestamp = e.now()
	_ = e.Emit(ctx, event)
}
