package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/taskdeck/internal/api/middleware"
	"github.com/phrazzld/taskdeck/internal/api/shared"
	"github.com/phrazzld/taskdeck/internal/platform/logger"
	"github.com/phrazzld/taskdeck/internal/telemetry"
	"github.com/phrazzld/taskdeck/internal/web"
)

// pageWriter renders pages with the caller's identity and pending flashes.
type pageWriter struct {
	renderer  web.Renderer
	telemetry telemetry.Sink
}

func (p pageWriter) render(w http.ResponseWriter, r *http.Request, name, title string, page web.Page) {
	page.Title = title
	page.User = middleware.CurrentUser(r)
	page.Flashes = shared.PopFlashes(w, r)

	if err := p.renderer.Render(w, http.StatusOK, name, page); err != nil {
		logger.FromContext(r.Context()).Error("failed to render page", "page", name, "error", err)
		p.telemetry.Exception(r.Context(), fmt.Errorf("render %s: %w", name, err))
		if errors.Is(err, web.ErrResponseWritten) {
			return
		}
		shared.RespondWithText(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}

// fail reports err and redirects to location with a generic flash message.
func (p pageWriter) fail(w http.ResponseWriter, r *http.Request, err error, flash, location string) {
	logger.FromContext(r.Context()).Debug("request failed",
		"path", r.URL.Path,
		"flash", flash,
		"error", err)
	p.telemetry.Exception(r.Context(), err)
	shared.SetFlash(w, flash)
	shared.SeeOther(w, r, location)
}
