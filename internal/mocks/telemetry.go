package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskdeck/internal/telemetry"
)

// RecordedMessage is a telemetry message captured by TelemetryRecorder.
type RecordedMessage struct {
	Text  string
	Level telemetry.Level
	Data  map[string]any
}

// TelemetryRecorder is a telemetry.Sink that keeps everything it receives.
// It is safe for concurrent use.
type TelemetryRecorder struct {
	mu          sync.Mutex
	breadcrumbs []telemetry.Breadcrumb
	messages    []RecordedMessage
	exceptions  []error
	users       []telemetry.User
}

var _ telemetry.Sink = (*TelemetryRecorder)(nil)

// NewTelemetryRecorder creates an empty recorder.
func NewTelemetryRecorder() *TelemetryRecorder {
	return &TelemetryRecorder{}
}

// Breadcrumb implements telemetry.Sink.
func (r *TelemetryRecorder) Breadcrumb(_ context.Context, crumb telemetry.Breadcrumb) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breadcrumbs = append(r.breadcrumbs, crumb)
}

// Message implements telemetry.Sink.
func (r *TelemetryRecorder) Message(_ context.Context, text string, level telemetry.Level, data map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, RecordedMessage{Text: text, Level: level, Data: data})
}

// Exception implements telemetry.Sink.
func (r *TelemetryRecorder) Exception(_ context.Context, err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exceptions = append(r.exceptions, err)
}

// SetUser implements telemetry.Sink.
func (r *TelemetryRecorder) SetUser(_ context.Context, user telemetry.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
}

// Breadcrumbs returns a copy of the recorded breadcrumbs.
func (r *TelemetryRecorder) Breadcrumbs() []telemetry.Breadcrumb {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]telemetry.Breadcrumb(nil), r.breadcrumbs...)
}

// BreadcrumbsIn returns the recorded breadcrumbs with the given category.
func (r *TelemetryRecorder) BreadcrumbsIn(category string) []telemetry.Breadcrumb {
	var out []telemetry.Breadcrumb
	for _, b := range r.Breadcrumbs() {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out
}

// Messages returns a copy of the recorded messages.
func (r *TelemetryRecorder) Messages() []RecordedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedMessage(nil), r.messages...)
}

// HasMessage reports whether a message with the given text was recorded.
func (r *TelemetryRecorder) HasMessage(text string) bool {
	for _, m := range r.Messages() {
		if m.Text == text {
			return true
		}
	}
	return false
}

// Exceptions returns a copy of the recorded errors.
func (r *TelemetryRecorder) Exceptions() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.exceptions...)
}

// Users returns a copy of the identities bound with SetUser.
func (r *TelemetryRecorder) Users() []telemetry.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]telemetry.User(nil), r.users...)
}
