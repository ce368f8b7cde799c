// Package web renders the application's HTML pages from embedded templates.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/phrazzld/taskdeck/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names understood by the default renderer.
const (
	PageIndex     = "index"
	PageLogin     = "login"
	PageRegister  = "register"
	PageDashboard = "dashboard"
)

// Page is the data every template receives. User is nil for anonymous visitors.
type Page struct {
	Title   string
	User    *domain.User
	Flashes []string
	Tasks   []*domain.Task
}

// ErrResponseWritten wraps failures that happen after the status line has
// been sent. The response can no longer be replaced with an error page.
var ErrResponseWritten = errors.New("response already started")

// Renderer writes a named page with the given status code.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data Page) error
}

// TemplateRenderer renders pages as the "layout" template wrapped around
// each page's "content" block.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

var _ Renderer = (*TemplateRenderer)(nil)

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	r := &TemplateRenderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageIndex, PageLogin, PageRegister, PageDashboard} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render implements Renderer. Output is buffered so a template error never
// produces a half-written page.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, name string, data Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render page %q: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%w: writing page %q: %w", ErrResponseWritten, name, err)
	}
	return nil
}
