package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDashboard(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, PageDashboard, Page{
		Title:   "Dashboard",
		User:    &domain.User{ID: 1, Username: "carol"},
		Flashes: []string{"Failed to create task"},
		Tasks: []*domain.Task{
			{ID: 5, OwnerID: 1, Title: "Buy milk"},
			{ID: 6, OwnerID: 1, Title: "<script>alert(1)</script>", Completed: true},
		},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "Signed in as carol")
	assert.Contains(t, body, `<p class="flash">Failed to create task</p>`)
	assert.Contains(t, body, `action="/task/5/toggle"`)
	assert.Contains(t, body, `<li class="task completed" data-task-id="6">`)
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRenderAnonymousPages(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	for _, name := range []string{PageIndex, PageLogin, PageRegister} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, r.Render(rec, http.StatusOK, name, Page{Title: name}))
			assert.Contains(t, rec.Body.String(), `href="/login"`)
			assert.NotContains(t, rec.Body.String(), "Signed in as")
		})
	}
}

func TestRenderEmptyDashboard(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, PageDashboard, Page{
		User: &domain.User{ID: 2, Username: "dave"},
	}))
	assert.Contains(t, rec.Body.String(), "No tasks yet.")
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.Error(t, r.Render(rec, http.StatusOK, "missing", Page{}))
	assert.Empty(t, rec.Body.String())
}

// failingWriter accepts headers but fails every body write.
type failingWriter struct {
	header http.Header
	status int
}

func (w *failingWriter) Header() http.Header { return w.header }

func (w *failingWriter) WriteHeader(status int) { w.status = status }

func (w *failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestRenderWriteFailure(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	w := &failingWriter{header: http.Header{}}
	err = r.Render(w, http.StatusOK, PageIndex, Page{Title: "Home"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResponseWritten)
	assert.Equal(t, http.StatusOK, w.status)
}
