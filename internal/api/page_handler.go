package api

import (
	"net/http"

	"github.com/phrazzld/taskdeck/internal/api/shared"
	"github.com/phrazzld/taskdeck/internal/platform/logger"
	"github.com/phrazzld/taskdeck/internal/telemetry"
	"github.com/phrazzld/taskdeck/internal/web"
)

// PageHandler serves the public pages.
type PageHandler struct {
	pageWriter
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(renderer web.Renderer, sink telemetry.Sink) *PageHandler {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	return &PageHandler{pageWriter{renderer: renderer, telemetry: sink}}
}

// Index handles GET /.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, web.PageIndex, "Home", web.Page{})
}

// Health handles GET /health.
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusOK, "OK")
}

// Error handles GET /error. It always panics with a *Fault chosen by the
// type query parameter; the panic is left for the recovery middleware.
func (h *PageHandler) Error(w http.ResponseWriter, r *http.Request) {
	fault := NewFault(r.URL.Query().Get("type"))
	logger.FromContext(r.Context()).Warn("raising demonstration fault", "kind", fault.Kind)
	panic(fault)
}
