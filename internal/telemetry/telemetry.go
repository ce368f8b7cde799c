package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Level is the severity attached to breadcrumbs and messages.
type Level string

// Levels understood by every handler.
const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Kind identifies the shape of an Event.
type Kind string

// Event kinds.
const (
	KindBreadcrumb Kind = "breadcrumb"
	KindMessage    Kind = "message"
	KindException  Kind = "exception"
	KindUser       Kind = "user"
)

// Breadcrumb is a trail entry describing a notable event prior to a possible fault.
type Breadcrumb struct {
	Category string
	Message  string
	Level    Level
	Data     map[string]any
}

// User identifies the person subsequent events should be attributed to.
type User struct {
	ID       int64
	Username string
}

// Sink receives telemetry from application code. Implementations must be
// safe for concurrent use and must never block the caller on delivery.
type Sink interface {
	// Breadcrumb records a trail entry on the current scope.
	Breadcrumb(ctx context.Context, crumb Breadcrumb)

	// Message reports a standalone event with the given level.
	Message(ctx context.Context, text string, level Level, data map[string]any)

	// Exception reports an error.
	Exception(ctx context.Context, err error)

	// SetUser binds subsequent events in the current scope to user.
	SetUser(ctx context.Context, user User)
}

// Event is a single telemetry record as delivered to a Handler.
type Event struct {
	ID        uuid.UUID
	Kind      Kind
	Level     Level
	Category  string
	Message   string
	Data      map[string]any
	Err       error
	User      *User
	Timestamp time.Time
}

// Handler processes events produced by an Emitter.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Nop is a Sink that discards everything.
type Nop struct{}

func (Nop) Breadcrumb(context.Context, Breadcrumb)                 {}
func (Nop) Message(context.Context, string, Level, map[string]any) {}
func (Nop) Exception(context.Context, error)                      {}
func (Nop) SetUser(context.Context, User)                         {}

var _ Sink = Nop{}
