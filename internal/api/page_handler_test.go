package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskdeck/internal/mocks"
	"github.com/phrazzld/taskdeck/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageHandler_Error(t *testing.T) {
	tests := []struct {
		query string
		kind  FaultKind
	}{
		{"", FaultDivision},
		{"?type=division", FaultDivision},
		{"?type=key", FaultKey},
		{"?type=type", FaultType},
		{"?type=whatever", FaultGeneric},
	}

	handler := NewPageHandler(&recordingRenderer{}, nil)
	for _, tc := range tests {
		t.Run(string(tc.kind)+tc.query, func(t *testing.T) {
			var recovered any
			func() {
				defer func() { recovered = recover() }()
				handler.Error(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/error"+tc.query, nil))
			}()

			fault, ok := recovered.(*Fault)
			require.True(t, ok, "panics with *Fault, got %T", recovered)
			assert.Equal(t, tc.kind, fault.Kind)
			assert.Error(t, errors.Unwrap(fault))
		})
	}
}

func TestPageHandler_IndexAndHealth(t *testing.T) {
	renderer := &recordingRenderer{}
	handler := NewPageHandler(renderer, nil)

	rec := httptest.NewRecorder()
	handler.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, web.PageIndex, renderer.name)
	assert.Nil(t, renderer.page.User)

	rec = httptest.NewRecorder()
	handler.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRenderFailureIsReported(t *testing.T) {
	recorder := mocks.NewTelemetryRecorder()
	handler := NewPageHandler(&recordingRenderer{err: errors.New("template exploded")}, recorder)

	rec := httptest.NewRecorder()
	handler.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, recorder.Exceptions(), 1)
	assert.Contains(t, recorder.Exceptions()[0].Error(), "template exploded")
}

// brokenPipeRenderer starts the response and then fails mid-body.
type brokenPipeRenderer struct{}

func (brokenPipeRenderer) Render(w http.ResponseWriter, status int, name string, _ web.Page) error {
	w.WriteHeader(status)
	return fmt.Errorf("%w: writing page %q: %w", web.ErrResponseWritten, name, errors.New("broken pipe"))
}

func TestRenderFailureAfterHeaderIsOnlyReported(t *testing.T) {
	recorder := mocks.NewTelemetryRecorder()
	handler := NewPageHandler(brokenPipeRenderer{}, recorder)

	rec := httptest.NewRecorder()
	handler.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String(), "no error text is appended to a started page")
	assert.Empty(t, rec.Header().Get("X-Content-Type-Options"))
	require.Len(t, recorder.Exceptions(), 1)
	assert.Contains(t, recorder.Exceptions()[0].Error(), "broken pipe")
}

func TestNewFaultMessages(t *testing.T) {
	assert.Equal(t, "division fault: integer divide by zero", NewFault("").Error())
	assert.Equal(t, `key fault: key "nonexistent" not found`, NewFault("key").Error())
}
